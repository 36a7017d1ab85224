package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/AllMightySauron/swgoh-api-swgohgg/internal/logging"
	"github.com/AllMightySauron/swgoh-api-swgohgg/internal/reporting"
	"github.com/spf13/cobra"
)

var errNotFound = errors.New("not found")

func withArgument(ctx context.Context, key, value string) context.Context {
	ctx = logging.AddMetaToContext(ctx, slog.String(key, value))
	return reporting.AddExtrasToContext(ctx, map[string]string{key: value})
}

func writeJSON(cmd *cobra.Command, v any) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// lookupCommand builds a command printing the result of a lookup that may come up empty
func lookupCommand(use, short string, args cobra.PositionalArgs, describe func(args []string) string, lookup func(ctx context.Context, args []string) (any, bool, error)) *cobra.Command {
	return &cobra.Command{
		Use:         use,
		Short:       short,
		Args:        args,
		Annotations: map[string]string{annotationServices: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withArgument(cmd.Context(), "args", strings.Join(args, " "))
			result, found, err := lookup(ctx, args)
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("%s: %w", describe(args), errNotFound)
			}
			return writeJSON(cmd, result)
		},
	}
}

func fetchCommand(use, short, argument string, fetch func(ctx context.Context, id string) (any, error)) *cobra.Command {
	return &cobra.Command{
		Use:         use,
		Short:       short,
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{annotationServices: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := fetch(withArgument(cmd.Context(), argument, args[0]), args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd, result)
		},
	}
}

func newCharacterCmd(s *state) *cobra.Command {
	cmd := lookupCommand(
		"character <name>",
		"Find a character by name, acronym or name fragment",
		cobra.ExactArgs(1),
		func(args []string) string { return fmt.Sprintf("character %q", args[0]) },
		func(ctx context.Context, args []string) (any, bool, error) {
			return s.services.findCharacter(ctx, args[0])
		},
	)
	cmd.Aliases = []string{"char"}
	return cmd
}

func newShipCmd(s *state) *cobra.Command {
	return lookupCommand(
		"ship <name>",
		"Find a ship by name, acronym or name fragment",
		cobra.ExactArgs(1),
		func(args []string) string { return fmt.Sprintf("ship %q", args[0]) },
		func(ctx context.Context, args []string) (any, bool, error) {
			return s.services.findShip(ctx, args[0])
		},
	)
}

func newAbilityCmd(s *state) *cobra.Command {
	return lookupCommand(
		"ability <base-id>",
		"Get an ability by its base id",
		cobra.ExactArgs(1),
		func(args []string) string { return fmt.Sprintf("ability %q", args[0]) },
		func(ctx context.Context, args []string) (any, bool, error) {
			return s.services.getAbility(ctx, args[0])
		},
	)
}

func newGearCmd(s *state) *cobra.Command {
	return lookupCommand(
		"gear <base-id>",
		"Get a gear piece by its base id",
		cobra.ExactArgs(1),
		func(args []string) string { return fmt.Sprintf("gear %q", args[0]) },
		func(ctx context.Context, args []string) (any, bool, error) {
			return s.services.getGear(ctx, args[0])
		},
	)
}

func newPlayerUnitCmd(s *state) *cobra.Command {
	return lookupCommand(
		"player-unit <ally-code> <name>",
		"Get a unit from a player's roster",
		cobra.ExactArgs(2),
		func(args []string) string { return fmt.Sprintf("unit %q for ally code %s", args[1], args[0]) },
		func(ctx context.Context, args []string) (any, bool, error) {
			return s.services.getPlayerUnit(ctx, args[0], args[1])
		},
	)
}

func newPlayerCmd(s *state) *cobra.Command {
	return fetchCommand("player <ally-code>", "Get a player profile and roster", "allyCode", func(ctx context.Context, allyCode string) (any, error) {
		return s.services.getPlayer(ctx, allyCode)
	})
}

func newPlayerStatsCmd(s *state) *cobra.Command {
	return fetchCommand("player-stats <ally-code>", "Summarize a player's roster", "allyCode", func(ctx context.Context, allyCode string) (any, error) {
		return s.services.getPlayerStats(ctx, allyCode)
	})
}

func newGuildCmd(s *state) *cobra.Command {
	return fetchCommand("guild <guild-id>", "Get a guild and its members", "guildID", func(ctx context.Context, guildID string) (any, error) {
		return s.services.getGuild(ctx, guildID)
	})
}

func newModsCmd(s *state) *cobra.Command {
	return fetchCommand("mods <ally-code>", "Get a player's mods", "allyCode", func(ctx context.Context, allyCode string) (any, error) {
		return s.services.getPlayerMods(ctx, allyCode)
	})
}
