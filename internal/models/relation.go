package models

import (
	"time"
)

// UserRelation is a directed, typed edge between two users. The composite
// unique index makes duplicate inserts of the same (from, to, type) triple
// no-ops, which the relation service relies on under concurrent likes.
type UserRelation struct {
	ID           uint      `gorm:"primaryKey"`
	FromUserID   uint      `gorm:"not null;index:idx_relation_edge,unique"`
	ToUserID     uint      `gorm:"not null;index:idx_relation_edge,unique"`
	Type         string    `gorm:"type:varchar(20);not null;index:idx_relation_edge,unique"`
	ReportReason string    `gorm:"type:varchar(500)"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

// Relation type constants
const (
	RelationLike      = "LIKE"
	RelationMatch     = "MATCH"
	RelationBlock     = "BLOCK"
	RelationShortlist = "SHORTLIST"
	RelationRequest   = "REQUEST"
	RelationReport    = "REPORT"
)

// PositiveRelationTypes are the edges a block purges in both directions.
func PositiveRelationTypes() []string {
	return []string{RelationLike, RelationMatch, RelationShortlist}
}

func (UserRelation) TableName() string {
	return "user_relations"
}
