package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/honeycarbs/job-discovery/internal/domain"
	"github.com/honeycarbs/job-discovery/internal/domain/criteria"
	"github.com/honeycarbs/job-discovery/internal/domain/job"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run a discovery session from the command line and print offers as JSON",
	Long:  "Run a discovery session and print the normalized offers as JSON. With --pages above one the session keeps loading more until it is exhausted.",
	RunE:  runSearch,
}

var (
	searchKeyword    string
	searchSkills     []string
	searchLocation   string
	searchContract   string
	searchExperience string
	searchMaxAge     int
	searchLimit      int
	searchPages      int
	searchUserID     string
	searchBroad      bool
)

func init() {
	searchCmd.Flags().StringVarP(&searchKeyword, "keyword", "k", "", "Free-text keyword, comma separated terms allowed")
	searchCmd.Flags().StringSliceVarP(&searchSkills, "skills", "s", nil, "Skill keywords")
	searchCmd.Flags().StringVarP(&searchLocation, "location", "l", "", "Country name, ISO code or free-text region")
	searchCmd.Flags().StringVar(&searchContract, "contract", "", "full_time, part_time, freelance, internship, temporary or any")
	searchCmd.Flags().StringVar(&searchExperience, "experience", "", "entry, junior, mid, senior, lead or any")
	searchCmd.Flags().IntVar(&searchMaxAge, "max-age", 0, "Only offers posted within this many days (default 60)")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 0, "Page size between 1 and 100")
	searchCmd.Flags().IntVar(&searchPages, "pages", 1, "How many pages to load at most")
	searchCmd.Flags().StringVar(&searchUserID, "user", "", "User whose stored profile fills empty skills and location")
	searchCmd.Flags().BoolVar(&searchBroad, "broad", false, "Allow a search with no keywords and no filters")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, _ []string) error {
	if searchPages < 1 {
		return fmt.Errorf("--pages must be at least 1")
	}

	_, logger, res, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	defer func() { _ = res.Close(context.Background()) }()

	in := criteria.Input{
		Skills:          searchSkills,
		Keyword:         searchKeyword,
		Location:        searchLocation,
		ContractType:    searchContract,
		ExperienceLevel: searchExperience,
		MaxAgeDays:      searchMaxAge,
		Limit:           searchLimit,
		Broad:           searchBroad,
	}

	var session *job.Session
	if searchUserID != "" {
		session = res.JobService.NewSessionForUser(ctx, searchUserID, in)
	} else {
		session = res.JobService.NewSession(in)
	}

	for page := 0; page < searchPages && !session.Exhausted(); page++ {
		if ctx.Err() != nil {
			break
		}
		session.Next(ctx)
	}

	out := struct {
		Criteria  domain.SearchCriteria `json:"criteria"`
		Offers    []domain.JobOffer     `json:"offers"`
		Exhausted bool                  `json:"exhausted"`
	}{
		Criteria:  session.Criteria(),
		Offers:    session.Offers(),
		Exhausted: session.Exhausted(),
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
