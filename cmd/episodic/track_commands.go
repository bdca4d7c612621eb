package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"episodic/internal/domain"
	"episodic/internal/library"
)

func newTrackCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "track <series-id>",
		Short: "Start tracking a series",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSeriesID(args[0])
			if err != nil {
				return err
			}
			return ctx.withService(func(svc *library.Service) error {
				series, err := svc.Track(cmd.Context(), id)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Tracking %s (%d)\n", series.Name, series.ID)
				return nil
			})
		},
	}
}

func newUntrackCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "untrack <series-id>",
		Short: "Stop tracking a series",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSeriesID(args[0])
			if err != nil {
				return err
			}
			return ctx.withService(func(svc *library.Service) error {
				if err := svc.Untrack(id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Stopped tracking series %d\n", id)
				return nil
			})
		},
	}
}

func newListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tracked series",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(svc *library.Service) error {
				tracked, err := svc.Tracked()
				if err != nil {
					return err
				}
				printTrackedTable(cmd, tracked)
				return nil
			})
		},
	}
}

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var undo bool

	cmd := &cobra.Command{
		Use:   "watch <series-id> <season> [episode]",
		Short: "Mark an episode or a whole season as watched",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSeriesID(args[0])
			if err != nil {
				return err
			}
			season, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid season number %q", args[1])
			}

			if len(args) == 2 {
				if undo {
					return errors.New("--undo requires an episode number")
				}
				return ctx.withService(func(svc *library.Service) error {
					series, err := svc.MarkSeasonWatched(cmd.Context(), id, season)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Marked season %d of %s watched (%d episodes)\n",
						season, series.Name, series.Progress()[season])
					return nil
				})
			}

			episode, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid episode number %q", args[2])
			}
			return ctx.withService(func(svc *library.Service) error {
				var series *domain.TrackedSeries
				if undo {
					series, err = svc.MarkEpisodeUnwatched(id, season, episode)
				} else {
					series, err = svc.MarkEpisodeWatched(id, season, episode)
				}
				if err != nil {
					return err
				}
				state := "watched"
				if undo {
					state = "unwatched"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Marked %s %s for %s\n",
					domain.EpisodeCode(season, episode), state, series.Name)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&undo, "undo", false, "Mark the episode unwatched instead")
	return cmd
}

func newNotifyCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "notify <series-id> <on|off>",
		Short: "Toggle new-episode notifications for a series",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSeriesID(args[0])
			if err != nil {
				return err
			}
			var notify bool
			switch strings.ToLower(args[1]) {
			case "on":
				notify = true
			case "off":
				notify = false
			default:
				return fmt.Errorf("expected on or off, got %q", args[1])
			}
			return ctx.withService(func(svc *library.Service) error {
				series, err := svc.SetNotify(id, notify)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Notifications %s for %s\n", args[1], series.Name)
				return nil
			})
		},
	}
}

func newFindCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "find <query>",
		Short: "Fuzzy-search tracked series by name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			return ctx.withService(func(svc *library.Service) error {
				matches, err := svc.SearchTracked(query)
				if err != nil {
					return err
				}
				printTrackedTable(cmd, matches)
				return nil
			})
		},
	}
}

func printTrackedTable(cmd *cobra.Command, series []domain.TrackedSeries) {
	out := cmd.OutOrStdout()
	if len(series) == 0 {
		fmt.Fprintln(out, "No tracked series")
		return
	}

	rows := make([][]string, 0, len(series))
	for _, s := range series {
		year := ""
		if y := s.PremiereYear(); y > 0 {
			year = strconv.Itoa(y)
		}
		rows = append(rows, []string{
			strconv.FormatInt(s.ID, 10),
			s.Name,
			dash(year),
			dash(s.Status),
			strconv.Itoa(s.WatchedCount()),
			yesNo(s.Notify),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"ID", "Name", "Year", "Status", "Watched", "Notify"},
		rows, 1, 5,
	))
}

func parseSeriesID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid series id %q", arg)
	}
	return id, nil
}
