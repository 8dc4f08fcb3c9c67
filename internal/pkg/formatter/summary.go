package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/futig/census-agent/internal/entity"
)

// Section is one titled block of a case summary
type Section struct {
	Title string
	Lines []string
}

// CaseSummary is the readable form of the records stored for one case
type CaseSummary struct {
	CaseID   string
	Sections []Section
}

// NewCaseSummary decodes the stored records of a case, in record key order
func NewCaseSummary(caseID string, records []*entity.CensusRecord) (*CaseSummary, error) {
	summary := &CaseSummary{CaseID: caseID}

	for _, r := range records {
		switch r.Type {
		case entity.RecordTypeSurveyComplete:
			var survey entity.SurveyRecord
			if err := sonic.Unmarshal(r.Payload, &survey); err != nil {
				return nil, fmt.Errorf("decode %s: %w", r.RecordKey, err)
			}
			summary.Sections = append(summary.Sections, surveySection(&survey))
		case entity.RecordTypeCallbackScheduled:
			var callback entity.CallbackRecord
			if err := sonic.Unmarshal(r.Payload, &callback); err != nil {
				return nil, fmt.Errorf("decode %s: %w", r.RecordKey, err)
			}
			summary.Sections = append(summary.Sections, callbackSection(&callback))
		default:
			summary.Sections = append(summary.Sections, Section{
				Title: string(r.Type),
				Lines: []string{"Recorded " + r.RecordKey},
			})
		}
	}

	return summary, nil
}

// Title is the document heading
func (s *CaseSummary) Title() string {
	return "Census case " + s.CaseID
}

func surveySection(r *entity.SurveyRecord) Section {
	lines := []string{
		"Status: " + string(r.Status),
		"Confirmation number: " + r.ConfirmationNumber,
		"Completed at: " + r.CompletedAt,
		"Household size: " + strconv.Itoa(r.HouseholdCount),
	}
	if r.SurveyStartTime != "" {
		lines = append(lines, "Started at: "+r.SurveyStartTime)
	}
	if r.HousingTenure != "" {
		lines = append(lines, "Housing: "+r.HousingTenure)
	}
	if r.ContactPhone != "" {
		lines = append(lines, "Contact phone: "+r.ContactPhone)
	}
	for _, p := range r.Persons {
		lines = append(lines, personLine(p))
	}

	return Section{Title: "Survey", Lines: lines}
}

func personLine(p entity.PersonRecord) string {
	name := strings.TrimSpace(p.FirstName + " " + p.LastName)
	if name == "" {
		name = "(no name)"
	}

	details := []string{}
	for _, v := range []string{p.Relationship, p.Sex} {
		if v != "" {
			details = append(details, v)
		}
	}
	if p.Age != nil {
		details = append(details, "age "+strconv.Itoa(*p.Age))
	}
	if p.Race != "" {
		details = append(details, p.Race)
	}

	line := fmt.Sprintf("Person %d: %s", p.PersonNumber, name)
	if len(details) > 0 {
		line += " (" + strings.Join(details, ", ") + ")"
	}
	return line
}

func callbackSection(r *entity.CallbackRecord) Section {
	return Section{
		Title: "Callback",
		Lines: []string{
			"Status: " + r.Status,
			"When: " + strings.TrimSpace(r.CallbackDate+" "+r.CallbackTime),
			"Phone: " + r.CallbackPhone,
			"Requested at: " + r.Timestamp,
		},
	}
}
