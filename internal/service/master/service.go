// Package master bundles the small administrative reference data:
// holidays, projects, message templates and system settings.
package master

import (
	"context"

	"github.com/google/uuid"
	"github.com/relief-experts/attendance-backend-go/internal/domain/holiday"
	"github.com/relief-experts/attendance-backend-go/internal/domain/project"
	"github.com/relief-experts/attendance-backend-go/internal/domain/settings"
	"github.com/relief-experts/attendance-backend-go/internal/domain/template"
	"github.com/relief-experts/attendance-backend-go/internal/pkg/validator"
)

type Service interface {
	CreateHoliday(ctx context.Context, name, date string) (holiday.Holiday, error)
	ListHolidays(ctx context.Context) ([]holiday.Holiday, error)
	DeleteHoliday(ctx context.Context, id string) error

	CreateProject(ctx context.Context, name, code string, description *string) (project.Project, error)
	ListProjects(ctx context.Context) ([]project.Project, error)
	UpdateProject(ctx context.Context, p project.Project) error
	DeleteProject(ctx context.Context, id string) error

	ListTemplates(ctx context.Context) ([]template.MessageTemplate, error)
	UpsertTemplate(ctx context.Context, templateType, content string) (template.MessageTemplate, error)

	GetSettings(ctx context.Context) (settings.SystemSettings, error)
	UpdateSettings(ctx context.Context, s settings.SystemSettings) (settings.SystemSettings, error)
}

type MasterService struct {
	holidays  holiday.Repository
	projects  project.Repository
	templates template.Repository
	settings  settings.Repository
}

func NewMasterService(
	holidays holiday.Repository,
	projects project.Repository,
	templates template.Repository,
	settingsRepo settings.Repository,
) Service {
	return &MasterService{
		holidays:  holidays,
		projects:  projects,
		templates: templates,
		settings:  settingsRepo,
	}
}

func (s *MasterService) CreateHoliday(ctx context.Context, name, date string) (holiday.Holiday, error) {
	var errs validator.ValidationErrors
	if validator.IsEmpty(name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if _, ok := validator.IsValidDate(date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be YYYY-MM-DD"})
	}
	if len(errs) > 0 {
		return holiday.Holiday{}, errs
	}

	return s.holidays.Create(ctx, holiday.Holiday{ID: uuid.NewString(), Name: name, Date: date})
}

func (s *MasterService) ListHolidays(ctx context.Context) ([]holiday.Holiday, error) {
	return s.holidays.List(ctx)
}

func (s *MasterService) DeleteHoliday(ctx context.Context, id string) error {
	return s.holidays.Delete(ctx, id)
}

func (s *MasterService) CreateProject(ctx context.Context, name, code string, description *string) (project.Project, error) {
	var errs validator.ValidationErrors
	if validator.IsEmpty(name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if validator.IsEmpty(code) {
		errs = append(errs, validator.ValidationError{Field: "code", Message: "code is required"})
	}
	if len(errs) > 0 {
		return project.Project{}, errs
	}

	return s.projects.Create(ctx, project.Project{
		ID:          uuid.NewString(),
		Name:        name,
		Code:        code,
		Description: description,
	})
}

func (s *MasterService) ListProjects(ctx context.Context) ([]project.Project, error) {
	return s.projects.List(ctx)
}

func (s *MasterService) UpdateProject(ctx context.Context, p project.Project) error {
	return s.projects.Update(ctx, p)
}

func (s *MasterService) DeleteProject(ctx context.Context, id string) error {
	return s.projects.SoftDelete(ctx, id)
}

func (s *MasterService) ListTemplates(ctx context.Context) ([]template.MessageTemplate, error) {
	return s.templates.List(ctx)
}

func (s *MasterService) UpsertTemplate(ctx context.Context, templateType, content string) (template.MessageTemplate, error) {
	var errs validator.ValidationErrors
	if !validator.IsInSlice(templateType, []string{"check_in", "late_check_in", "check_out", "early_check_out"}) {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "type must be one of the gate outcomes"})
	}
	if validator.IsEmpty(content) {
		errs = append(errs, validator.ValidationError{Field: "content", Message: "content is required"})
	}
	if len(errs) > 0 {
		return template.MessageTemplate{}, errs
	}

	return s.templates.Upsert(ctx, template.MessageTemplate{
		ID:      uuid.NewString(),
		Type:    templateType,
		Content: content,
	})
}

func (s *MasterService) GetSettings(ctx context.Context) (settings.SystemSettings, error) {
	return s.settings.Get(ctx)
}

func (s *MasterService) UpdateSettings(ctx context.Context, cfg settings.SystemSettings) (settings.SystemSettings, error) {
	var errs validator.ValidationErrors
	if validator.IsEmpty(cfg.SystemName) {
		errs = append(errs, validator.ValidationError{Field: "system_name", Message: "system_name is required"})
	}
	if len(errs) > 0 {
		return cfg, errs
	}
	return s.settings.Update(ctx, cfg)
}
