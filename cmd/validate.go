package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rotaplan/rotaplan/core/roster"
	"github.com/rotaplan/rotaplan/pkg/rosterio"
)

var validateInput string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a roster file without solving",
	RunE:  validateRoster,
}

func init() {
	validateCmd.Flags().StringVarP(&validateInput, "input", "i", "", "roster CSV file")
	_ = validateCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(validateCmd)
}

func validateRoster(cmd *cobra.Command, args []string) error {
	ros, err := rosterio.Load(validateInput)
	if err != nil {
		return err
	}
	if _, err := roster.BuildIndex(ros.Persons); err != nil {
		return err
	}
	fmt.Printf("%s: %d persons, %d subcontractors, %d days (%s to %s), slots %v\n",
		validateInput, len(ros.Persons), len(ros.Subcontractors), len(ros.Days),
		ros.From.Format("2006-01-02"), ros.To.Format("2006-01-02"), ros.Slots)
	return nil
}
