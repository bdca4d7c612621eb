package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"episodic/internal/domain"
	"episodic/internal/library"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search the remote catalog for series",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			return ctx.withService(func(svc *library.Service) error {
				results, err := svc.SearchCatalog(cmd.Context(), query)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(results) == 0 {
					fmt.Fprintf(out, "No results for %q\n", query)
					return nil
				}
				rows := make([][]string, 0, len(results))
				for _, res := range results {
					rows = append(rows, []string{
						strconv.FormatInt(res.Show.ID, 10),
						res.Show.Name,
						dash(premiereYear(res.Show.Premiered)),
						dash(res.Show.Status),
						dash(networkName(&res.Show)),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"ID", "Name", "Year", "Status", "Network"},
					rows, 1,
				))
				return nil
			})
		},
	}
}

func newInfoCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "info <series-id>",
		Short: "Show series details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSeriesID(args[0])
			if err != nil {
				return err
			}
			return ctx.withService(func(svc *library.Service) error {
				series, err := svc.SeriesInfo(cmd.Context(), id)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s (%d)\n", series.Name, series.ID)
				fmt.Fprintf(out, "Status:    %s\n", dash(series.Status))
				fmt.Fprintf(out, "Premiered: %s\n", dash(series.Premiered))
				if series.Ended != "" {
					fmt.Fprintf(out, "Ended:     %s\n", series.Ended)
				}
				fmt.Fprintf(out, "Network:   %s\n", dash(networkName(series)))
				if len(series.Genres) > 0 {
					fmt.Fprintf(out, "Genres:    %s\n", strings.Join(series.Genres, ", "))
				}
				if series.Runtime > 0 {
					fmt.Fprintf(out, "Runtime:   %d min\n", series.Runtime)
				}
				if rating := formatRating(series.Rating.Average); rating != "" {
					fmt.Fprintf(out, "Rating:    %s\n", rating)
				}
				if summary := series.PlainSummary(); summary != "" {
					fmt.Fprintf(out, "\n%s\n", summary)
				}
				return nil
			})
		},
	}
}

func newSeasonsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "seasons <series-id>",
		Short: "List a series' seasons",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSeriesID(args[0])
			if err != nil {
				return err
			}
			return ctx.withService(func(svc *library.Service) error {
				seasons, err := svc.Seasons(cmd.Context(), id)
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(seasons))
				for _, season := range seasons {
					episodes := ""
					if season.EpisodeOrder > 0 {
						episodes = strconv.Itoa(season.EpisodeOrder)
					}
					rows = append(rows, []string{
						strconv.Itoa(season.Number),
						dash(episodes),
						dash(season.PremiereDate),
						dash(season.EndDate),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"Season", "Episodes", "Premiere", "End"},
					rows, 1, 2,
				))
				return nil
			})
		},
	}
}

func newEpisodesCommand(ctx *commandContext) *cobra.Command {
	var seasonFilter int

	cmd := &cobra.Command{
		Use:   "episodes <series-id>",
		Short: "List a series' episodes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSeriesID(args[0])
			if err != nil {
				return err
			}
			return ctx.withService(func(svc *library.Service) error {
				episodes, err := svc.Episodes(cmd.Context(), id)
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(episodes))
				for _, ep := range episodes {
					if seasonFilter > 0 && ep.Season != seasonFilter {
						continue
					}
					rows = append(rows, []string{
						domain.EpisodeCode(ep.Season, ep.Number),
						ep.Name,
						dash(ep.Airdate),
						dash(formatRating(ep.Rating.Average)),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"Episode", "Name", "Airdate", "Rating"},
					rows, 4,
				))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&seasonFilter, "season", "s", 0, "Only list episodes of this season")
	return cmd
}

func newCastCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "cast <series-id>",
		Short: "List a series' cast",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSeriesID(args[0])
			if err != nil {
				return err
			}
			return ctx.withService(func(svc *library.Service) error {
				cast, err := svc.Cast(cmd.Context(), id)
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(cast))
				for _, credit := range cast {
					role := credit.Character.Name
					if credit.Voice {
						role += " (voice)"
					}
					rows = append(rows, []string{credit.Person.Name, role})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"Actor", "Character"},
					rows,
				))
				return nil
			})
		},
	}
}

func newScheduleCommand(ctx *commandContext) *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Show the airing schedule for a day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			day := time.Now()
			if dateFlag != "" {
				parsed, err := time.Parse("2006-01-02", dateFlag)
				if err != nil {
					return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", dateFlag)
				}
				day = parsed
			}
			return ctx.withService(func(svc *library.Service) error {
				entries, err := svc.Schedule(cmd.Context(), day)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(entries) == 0 {
					fmt.Fprintf(out, "Nothing airing on %s\n", day.Format("2006-01-02"))
					return nil
				}
				rows := make([][]string, 0, len(entries))
				for _, entry := range entries {
					rows = append(rows, []string{
						dash(entry.Airtime),
						entry.Show.Name,
						domain.EpisodeCode(entry.Season, entry.Number),
						entry.Name,
						dash(networkName(&entry.Show)),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Time", "Show", "Episode", "Name", "Network"},
					rows,
				))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Schedule date as YYYY-MM-DD (default today)")
	return cmd
}
