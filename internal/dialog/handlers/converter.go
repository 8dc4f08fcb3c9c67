package handlers

import (
	"github.com/futig/census-agent/internal/dialog/state"
	"github.com/futig/census-agent/internal/entity"
)

// toSurveyRecord builds the completion record from the state. Only persons
// collected within the household bound are included; the indexes of those
// still missing are returned.
func toSurveyRecord(st *state.State) (*entity.SurveyRecord, []int) {
	persons := make([]entity.PersonRecord, 0, len(st.Household.Persons))
	for i, p := range st.Household.Persons {
		if p != nil {
			persons = append(persons, toPersonRecord(i+1, p))
		}
	}

	return &entity.SurveyRecord{
		CaseID:             st.CaseID,
		Timestamp:          st.CompletedAt,
		Type:               entity.RecordTypeSurveyComplete,
		Status:             entity.SurveyStatusComplete,
		ConfirmationNumber: st.ConfirmationNumber,
		HouseholdCount:     st.Household.Count.Value,
		HousingTenure:      st.HousingTenure,
		ContactPhone:       st.ContactPhone,
		Persons:            persons,
		SurveyStartTime:    st.SurveyStartTime,
		CompletedAt:        st.CompletedAt,
	}, st.Household.Missing()
}

func toPersonRecord(number int, p *state.Person) entity.PersonRecord {
	return entity.PersonRecord{
		PersonNumber:     number,
		FirstName:        p.FirstName,
		LastName:         p.LastName,
		Relationship:     p.Relationship,
		Sex:              p.Sex,
		DateOfBirth:      p.DateOfBirth,
		Age:              p.Age,
		IsHispanicLatino: p.IsHispanic,
		HispanicOrigin:   p.HispanicOrigin,
		Race:             p.Race,
		RaceDetail:       p.RaceDetail,
	}
}

func toCallbackRecord(caseID, timestamp string, cb state.Callback) *entity.CallbackRecord {
	return &entity.CallbackRecord{
		CaseID:        caseID,
		Timestamp:     timestamp,
		Type:          entity.RecordTypeCallbackScheduled,
		Status:        entity.CallbackStatusPending,
		CallbackDate:  cb.Date,
		CallbackTime:  cb.Time,
		CallbackPhone: cb.Phone,
	}
}
