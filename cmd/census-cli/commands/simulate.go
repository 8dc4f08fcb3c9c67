package commands

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/futig/census-agent/internal/dialog/slots"
	"github.com/futig/census-agent/internal/dialog/state"
	"github.com/futig/census-agent/internal/entity"
	"github.com/spf13/cobra"
)

// samplePeople fills the person loop; larger households cycle through it
var samplePeople = []map[string]string{
	{slots.FirstName: "Maria", slots.LastName: "Alvarez", slots.Sex: "Female", slots.Age: "41", slots.IsHispanicLatino: "yes", slots.HispanicOrigin: "Mexican", slots.Race: "White"},
	{slots.FirstName: "Daniel", slots.LastName: "Alvarez", slots.Relationship: "Spouse", slots.Sex: "Male", slots.Age: "43", slots.IsHispanicLatino: "yes", slots.HispanicOrigin: "Mexican", slots.Race: "White"},
	{slots.FirstName: "Lucia", slots.LastName: "Alvarez", slots.Relationship: "Daughter", slots.Sex: "Female", slots.Age: "12", slots.IsHispanicLatino: "yes", slots.Race: "White"},
	{slots.FirstName: "Ruth", slots.LastName: "Okafor", slots.Relationship: "Roommate", slots.Sex: "Female", slots.Age: "29", slots.IsHispanicLatino: "no", slots.Race: "Black", slots.RaceDetail: "Nigerian"},
}

type scriptedTurn struct {
	intent string
	slots  map[string]string
}

// NewSimulateCmd creates the simulate command
func NewSimulateCmd(opts *rootOptions) *cobra.Command {
	var (
		people int
		refuse bool
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a scripted interview end to end",
		Long: `Run a scripted household interview from consent to completion and
print every turn followed by the records stored for the case.

Local runs always use the in-memory store.

Examples:
  census-cli simulate
  census-cli simulate --people 4
  census-cli simulate --refuse
  census-cli simulate --endpoint http://localhost:8080`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if people < 1 || people > state.MaxHouseholdCount {
				return fmt.Errorf("%w: --people must be between 1 and %d", entity.ErrInvalidParameter, state.MaxHouseholdCount)
			}

			ctx := cmd.Context()
			r, err := opts.newRunner(ctx, true)
			if err != nil {
				return err
			}
			defer r.Close(ctx)

			return simulate(ctx, cmd.OutOrStdout(), r, interviewScript(people, refuse))
		},
	}

	cmd.Flags().IntVar(&people, "people", 2, "Number of people in the simulated household")
	cmd.Flags().BoolVar(&refuse, "refuse", false, "Refuse the survey after address verification")

	return cmd
}

func interviewScript(people int, refuse bool) []scriptedTurn {
	script := []scriptedTurn{
		{intent: "WelcomeIntent", slots: map[string]string{slots.ConsentToProceed: "yes"}},
		{intent: "VerifyAddressIntent", slots: map[string]string{slots.AddressConfirmation: "yes", slots.IsAdultResident: "yes"}},
	}
	if refuse {
		return append(script, scriptedTurn{intent: "RefuseSurveyIntent"})
	}

	script = append(script, scriptedTurn{
		intent: "HouseholdCountIntent",
		slots:  map[string]string{slots.HouseholdCount: strconv.Itoa(people), slots.CountConfirmation: "yes"},
	})
	for i := 0; i < people; i++ {
		script = append(script, scriptedTurn{intent: "CollectPersonInfoIntent", slots: samplePeople[i%len(samplePeople)]})
	}

	return append(script,
		scriptedTurn{intent: "HousingInfoIntent", slots: map[string]string{slots.HousingTenure: "Owned with a mortgage", slots.PhoneNumber: "5551234567"}},
		scriptedTurn{intent: "CompleteSurveyIntent"},
	)
}

func simulate(ctx context.Context, out io.Writer, r runner, script []scriptedTurn) error {
	attrs := map[string]string{}

	for _, step := range script {
		resp, err := r.Turn(ctx, scriptedEvent(step, attrs))
		if err != nil {
			return fmt.Errorf("%s: %w", step.intent, err)
		}
		attrs = resp.SessionState.SessionAttributes

		action := ""
		if resp.SessionState.DialogAction != nil {
			action = string(resp.SessionState.DialogAction.Type)
		}
		message := ""
		if len(resp.Messages) > 0 {
			message = resp.Messages[0].Content
		}
		fmt.Fprintf(out, "%-24s %-10s %s\n", step.intent, action, message)
	}

	caseID := attrs[state.KeyCaseID]
	if caseID == "" {
		return nil
	}

	records, err := r.Records(ctx, caseID)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\ncase %s: %d record(s)\n", caseID, len(records))
	return printJSON(out, records)
}

func scriptedEvent(step scriptedTurn, attrs map[string]string) *entity.LexEvent {
	raw := make(map[string]*entity.LexSlot, len(step.slots))
	for name, v := range step.slots {
		raw[name] = &entity.LexSlot{Value: &entity.LexSlotValue{OriginalValue: v, InterpretedValue: v}}
	}

	return &entity.LexEvent{
		SessionID: "census-cli",
		SessionState: entity.LexSessionState{
			Intent:            entity.LexIntent{Name: step.intent, Slots: raw},
			SessionAttributes: attrs,
		},
	}
}
