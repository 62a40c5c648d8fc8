package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MNabeel-Git/RecruitmentManagementSystem/internal/apperr"
	"github.com/MNabeel-Git/RecruitmentManagementSystem/internal/authz"
	"github.com/MNabeel-Git/RecruitmentManagementSystem/internal/model"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportForVacancy writes all active candidates of a vacancy into an XLSX
// workbook: one column per schema field plus submission metadata. Admin only.
func (s *CandidateService) ExportForVacancy(ctx context.Context, p authz.Principal, jobVacancyID uint) (*bytes.Buffer, error) {
	if !p.IsAdmin() {
		return nil, apperr.Forbidden("Only admins can export candidates")
	}

	vacancy, err := s.vacancyForExport(ctx, p, jobVacancyID)
	if err != nil {
		return nil, err
	}

	var candidates []model.Candidate
	err = s.db.WithContext(ctx).
		Scopes(authz.TenantScope(p.TenantID), authz.ActiveScope).
		Where("job_vacancy_id = ?", vacancy.ID).
		Preload("CreatedBy").
		Order("created_at").
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheetName := "Candidates"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	header := []string{"ID", "Submitted By", "Submitted At"}
	for _, field := range vacancy.CandidateDataSchema {
		label := field.Label
		if label == "" {
			label = field.Key
		}
		header = append(header, label)
	}
	for col, title := range header {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheetName, cell, title)
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(header), 1)
	f.SetCellStyle(sheetName, "A1", lastHeader, headerStyle)

	for rowIdx, candidate := range candidates {
		submittedBy := ""
		if candidate.CreatedBy != nil {
			submittedBy = candidate.CreatedBy.Email
		}
		row := []interface{}{
			candidate.ID,
			submittedBy,
			candidate.CreatedAt.Format(time.RFC3339),
		}
		for _, field := range vacancy.CandidateDataSchema {
			row = append(row, candidate.Data[field.Key])
		}
		for col, value := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	f.Close()
	return &buf, nil
}

func (s *CandidateService) vacancyForExport(ctx context.Context, p authz.Principal, id uint) (*model.JobVacancy, error) {
	var vacancy model.JobVacancy
	err := s.db.WithContext(ctx).
		Scopes(authz.TenantScope(p.TenantID), authz.ActiveScope).
		First(&vacancy, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Job vacancy not found")
	}
	if err != nil {
		return nil, err
	}
	return &vacancy, nil
}
