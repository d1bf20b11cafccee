package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rishtahub/rishta_backend/internal/middleware"
	"github.com/rishtahub/rishta_backend/internal/models"
	"github.com/rishtahub/rishta_backend/internal/services"
	"github.com/rishtahub/rishta_backend/pkg/errors"
)

// ProfileHandler serves the authenticated user's own profile.
type ProfileHandler struct {
	profiles *services.ProfileService
}

func NewProfileHandler(profiles *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

func (h *ProfileHandler) Register(r gin.IRoutes) {
	r.GET("/profile", h.Get)
	r.PUT("/profile", h.Save)
}

func (h *ProfileHandler) Get(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		respondError(c, errors.New(errors.ErrCodeNotAuthenticated, "not authenticated"))
		return
	}

	profile, err := h.profiles.Get(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

type profileRequest struct {
	FullName    string  `json:"fullName"`
	Gender      string  `json:"gender"`
	DateOfBirth string  `json:"dateOfBirth"` // YYYY-MM-DD
	Height      float64 `json:"height"`
	City        string  `json:"city"`

	Religion      string `json:"religion"`
	Community     string `json:"community"`
	Caste         string `json:"caste"`
	ManglikStatus string `json:"manglikStatus"`

	HighestEducation string `json:"highestEducation"`
	Occupation       string `json:"occupation"`
	AnnualIncome     int64  `json:"annualIncome"`

	FamilyType   string `json:"familyType"`
	FamilyValues string `json:"familyValues"`

	DietPreference string `json:"dietPreference"`
	Drinking       bool   `json:"drinking"`
	Smoking        bool   `json:"smoking"`

	AboutMe  string `json:"aboutMe"`
	PhotoURL string `json:"photoUrl"`

	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (h *ProfileHandler) Save(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		respondError(c, errors.New(errors.ErrCodeNotAuthenticated, "not authenticated"))
		return
	}

	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.New(errors.ErrCodeValidationFailed, "invalid profile payload"))
		return
	}

	profile := &models.Profile{
		UserID:           userID,
		FullName:         req.FullName,
		Gender:           req.Gender,
		Height:           req.Height,
		City:             req.City,
		Religion:         req.Religion,
		Community:        req.Community,
		Caste:            req.Caste,
		ManglikStatus:    req.ManglikStatus,
		HighestEducation: req.HighestEducation,
		Occupation:       req.Occupation,
		AnnualIncome:     req.AnnualIncome,
		FamilyType:       req.FamilyType,
		FamilyValues:     req.FamilyValues,
		DietPreference:   req.DietPreference,
		Drinking:         req.Drinking,
		Smoking:          req.Smoking,
		AboutMe:          req.AboutMe,
		PhotoURL:         req.PhotoURL,
		Latitude:         req.Latitude,
		Longitude:        req.Longitude,
	}

	if req.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			respondError(c, errors.New(errors.ErrCodeValidationFailed, "dateOfBirth must be YYYY-MM-DD"))
			return
		}
		profile.DateOfBirth = &dob
	}

	if err := h.profiles.Save(profile); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}
