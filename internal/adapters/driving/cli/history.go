package cli

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/storesync-cli/internal/core/domain"
	"github.com/custodia-labs/storesync-cli/internal/core/services"
)

// errJournalDisabled is returned by history when no journal is wired.
var errJournalDisabled = errors.New("submission journal is disabled (set journal.enabled to true)")

var (
	historyLimit int
	historyJSON  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent submissions recorded locally",
	Long: `List fetch and sync submissions recorded in the local journal, newest
first. Credentials are never recorded.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", services.DefaultJournalLimit, "maximum number of entries")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output entries as JSON")
	rootCmd.AddCommand(historyCmd)
}

// historyEntry is the --json shape of a journal record.
type historyEntry struct {
	ID            string     `json:"id"`
	Kind          string     `json:"kind"`
	StoreURL      string     `json:"store_url"`
	APIVersion    string     `json:"api_version"`
	CreatedAtMin  *time.Time `json:"created_at_min"`
	CreatedAtMax  *time.Time `json:"created_at_max"`
	FullFetchSync bool       `json:"full_fetch_sync"`
	Outcome       string     `json:"outcome"`
	StatusCode    int        `json:"status_code,omitempty"`
	Message       string     `json:"message"`
	StartedAt     time.Time  `json:"started_at"`
	FinishedAt    time.Time  `json:"finished_at"`
}

func newHistoryEntry(r domain.SubmissionRecord) historyEntry {
	return historyEntry{
		ID:            r.ID,
		Kind:          r.Kind.String(),
		StoreURL:      r.StoreURL,
		APIVersion:    r.APIVersion,
		CreatedAtMin:  r.CreatedAtMin,
		CreatedAtMax:  r.CreatedAtMax,
		FullFetchSync: r.FullFetchSync,
		Outcome:       string(r.Outcome),
		StatusCode:    r.StatusCode,
		Message:       r.Message,
		StartedAt:     r.StartedAt,
		FinishedAt:    r.FinishedAt,
	}
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if journalService == nil {
		return errJournalDisabled
	}

	records, err := journalService.Recent(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("reading history: %w", err)
	}

	if historyJSON {
		entries := make([]historyEntry, len(records))
		for i, r := range records {
			entries[i] = newHistoryEntry(r)
		}
		return printJSON(cmd.OutOrStdout(), entries)
	}

	if len(records) == 0 {
		cmd.Println("No submissions recorded yet.")
		return nil
	}

	w := newTabWriter(cmd.OutOrStdout())
	fmt.Fprintln(w, "STARTED\tKIND\tSTORE\tRANGE\tOUTCOME\tSTATUS\tMESSAGE")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.Kind,
			r.StoreURL,
			describeRange(r),
			r.Outcome,
			describeStatus(r.StatusCode),
			r.Message,
		)
	}
	return w.Flush()
}

func describeRange(r domain.SubmissionRecord) string {
	if r.FullFetchSync {
		return "full"
	}
	if r.CreatedAtMin == nil && r.CreatedAtMax == nil {
		return "-"
	}
	return formatOptionalDate(r.CreatedAtMin) + ".." + formatOptionalDate(r.CreatedAtMax)
}

func describeStatus(code int) string {
	if code == 0 {
		return "-"
	}
	return strconv.Itoa(code)
}
