package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/osse101/HunterSystem_Go/internal/domain"
	"github.com/osse101/HunterSystem_Go/internal/hunter"
)

func newStatusCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show level, stats, quests and the login calendar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withService(cmd.Context(), opts, func(svc hunter.Service) error {
				profile, err := svc.GetProfile(cmd.Context(), opts.userID)
				if err != nil {
					return err
				}
				renderProfile(cmd.OutOrStdout(), profile)
				return nil
			})
		},
	}
}

func newXPCmd(opts *options) *cobra.Command {
	var source string
	cmd := &cobra.Command{
		Use:   "xp <amount>",
		Short: "Add XP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("amount must be a whole number: %w", err)
			}
			return runAction(cmd, opts, func(svc hunter.Service) (*hunter.ActionResult, error) {
				return svc.AddXP(cmd.Context(), opts.userID, amount, source)
			})
		},
	}
	cmd.Flags().StringVar(&source, "source", hunter.SourceManual, "where the XP came from")
	return cmd
}

func newClaimCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "claim <daily|weekly|calendar_day> <id>",
		Short: "Claim a completed quest or calendar day",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, id, err := parseKindAndID(args[0], args[1])
			if err != nil {
				return err
			}
			return runAction(cmd, opts, func(svc hunter.Service) (*hunter.ActionResult, error) {
				return svc.ClaimQuest(cmd.Context(), opts.userID, kind, id)
			})
		},
	}
}

func newContributeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "contribute <daily|weekly> <id> <amount>",
		Short: "Add progress to a quest",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, id, err := parseKindAndID(args[0], args[1])
			if err != nil {
				return err
			}
			amount, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("amount must be a whole number: %w", err)
			}
			return runAction(cmd, opts, func(svc hunter.Service) (*hunter.ActionResult, error) {
				return svc.Contribute(cmd.Context(), opts.userID, kind, id, amount)
			})
		},
	}
}

func newDailyCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "daily [day]",
		Short: "Claim today's login reward, or an earlier day of this week (1=Mon ... 7=Sun)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runAction(cmd, opts, func(svc hunter.Service) (*hunter.ActionResult, error) {
					return svc.ClaimToday(cmd.Context(), opts.userID)
				})
			}
			day, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("day must be a number from 1 to 7: %w", err)
			}
			return runAction(cmd, opts, func(svc hunter.Service) (*hunter.ActionResult, error) {
				return svc.ClaimDailyReward(cmd.Context(), opts.userID, day)
			})
		},
	}
}

func newSkillCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "skill <id>",
		Short: "Spend skill points to upgrade a skill",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("skill id must be a number: %w", err)
			}
			return runAction(cmd, opts, func(svc hunter.Service) (*hunter.ActionResult, error) {
				return svc.UpgradeSkill(cmd.Context(), opts.userID, id)
			})
		},
	}
}

func newTitleCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "title <id>",
		Short: "Equip an unlocked title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("title id must be a number: %w", err)
			}
			return runAction(cmd, opts, func(svc hunter.Service) (*hunter.ActionResult, error) {
				return svc.EquipTitle(cmd.Context(), opts.userID, id)
			})
		},
	}
}

// runAction executes a mutating action and prints what it changed
func runAction(cmd *cobra.Command, opts *options, action func(hunter.Service) (*hunter.ActionResult, error)) error {
	return withService(cmd.Context(), opts, func(svc hunter.Service) error {
		result, err := action(svc)
		if err != nil {
			return err
		}
		renderResult(cmd.OutOrStdout(), result)
		return nil
	})
}

func parseKindAndID(rawKind, rawID string) (domain.RewardKind, int, error) {
	kind, err := domain.ParseRewardKind(rawKind)
	if err != nil {
		return "", 0, err
	}
	id, err := strconv.Atoi(rawID)
	if err != nil {
		return "", 0, fmt.Errorf("id must be a number: %w", err)
	}
	return kind, id, nil
}
