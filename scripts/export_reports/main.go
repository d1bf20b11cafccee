package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/rishtahub/rishta_backend/internal/models"
	"github.com/rishtahub/rishta_backend/internal/repositories"
	"github.com/xuri/excelize/v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Exports all user reports to an XLSX file for the moderation team.
// Usage: go run ./scripts/export_reports [output.xlsx]
func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	output := "reports.xlsx"
	if len(os.Args) > 1 {
		output = os.Args[1]
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"), os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"), os.Getenv("DB_PORT"))

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect database:", err)
	}

	reports, err := repositories.NewRelationRepository(db).ListAll(models.RelationReport)
	if err != nil {
		log.Fatal("failed to load reports:", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Reports"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Report ID", "Reporter", "Reported User", "Reason", "Created At"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			log.Fatal(err)
		}
	}

	for i, report := range reports {
		row := i + 2
		values := []interface{}{
			report.ID,
			report.FromUserID,
			report.ToUserID,
			report.ReportReason,
			report.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				log.Fatal(err)
			}
		}
	}

	if err := f.SaveAs(output); err != nil {
		log.Fatal("failed to save workbook:", err)
	}

	fmt.Printf("Exported %d reports to %s\n", len(reports), output)
}
