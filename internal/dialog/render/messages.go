package render

import "fmt"

const (
	// Consent
	MsgConsentDeclined = "I understand. If you change your mind, you can complete your census online at census.gov or call 1-800-923-8282. Thank you for your time."
	MsgConsentAccepted = "Thank you for agreeing to participate. Let me verify your address on file."

	// Address verification
	MsgNoAdultResident = "I understand. Unfortunately, I need to speak with an adult resident of this address to complete the survey. You can complete your census online at census.gov. Thank you for your time."
	MsgAddressVerified = "Thank you for confirming. Now let's move on to count the people in your household."

	// Household count
	MsgAskCountAgain      = "I'm sorry, let me ask again. How many people were living at this address on April 1st?"
	msgCountNotUnderstood = "I'm sorry, I need the number of people as a whole number between 1 and %d. How many people were living at this address on April 1st?"
	msgCountAccepted      = "Great, I'll collect information for %d people. Let's start with Person 1."

	// Person collection
	MsgCountFirst      = "Before we talk about each person, I need to know how many people were living at this address on April 1st."
	msgPersonNext      = "Thank you. I've recorded the information for %s. Now let's collect information for Person %d."
	msgPersonsDone     = "Thank you. I've recorded the information for %s. Now I have a couple questions about your housing."
	fallbackPersonName = "this person"

	// Housing
	MsgHousingRecorded = "Thank you for providing your housing information. We're almost done with the survey."

	// Completion
	msgSurveyComplete = "Thank you for completing the census survey! I've recorded information for %s people at your address. Your confirmation number is %s. Please save this for your records. Thank you for doing your civic duty!"

	// Callback
	msgCallbackScheduled = "I've scheduled a callback for %s at %s. We'll call you at %s. Thank you for your time!"

	// Escalation
	MsgTransferToAgent = "I understand you'd like to speak with a census representative. Let me transfer you now. Please hold."

	// Refusal
	MsgRefused = "I understand. If you change your mind, you can complete your census online at census.gov or call 1-800-923-8282. Thank you for your time."

	// Fallback
	MsgFallbackEscalate = "I'm having trouble understanding. Let me connect you with a census representative who can assist you."
	MsgFallbackRetry    = "I'm sorry, I didn't quite catch that. Could you please rephrase your response? You can also say 'help' for assistance."

	// Errors
	MsgTechnicalIssue = "I'm sorry, something went wrong on our side. Please try again, or you can complete your census online at census.gov."
)

// CountNotUnderstood re-asks the household count with the accepted range
func CountNotUnderstood(max int) string {
	return fmt.Sprintf(msgCountNotUnderstood, max)
}

// CountAccepted confirms the household size
func CountAccepted(count int) string {
	return fmt.Sprintf(msgCountAccepted, count)
}

// PersonRecorded acknowledges a person and names the next one, or moves on to housing when next is 0
func PersonRecorded(firstName string, next int) string {
	if firstName == "" {
		firstName = fallbackPersonName
	}
	if next > 0 {
		return fmt.Sprintf(msgPersonNext, firstName, next)
	}
	return fmt.Sprintf(msgPersonsDone, firstName)
}

// SurveyComplete closes the interview with the household size and confirmation number
func SurveyComplete(householdCount, confirmation string) string {
	return fmt.Sprintf(msgSurveyComplete, householdCount, confirmation)
}

// CallbackScheduled echoes the scheduled call back
func CallbackScheduled(date, time, phone string) string {
	return fmt.Sprintf(msgCallbackScheduled, date, time, phone)
}
