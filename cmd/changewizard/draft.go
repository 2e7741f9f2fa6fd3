package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-changewizard/internal/config"
)

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Inspect or discard the saved draft",
}

var draftShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved draft",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return showDraft(cmd.OutOrStdout(), *cfg)
	},
}

var draftClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the saved draft",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return clearDraft(cmd.OutOrStdout(), *cfg)
	},
}

func init() {
	draftCmd.AddCommand(draftShowCmd)
	draftCmd.AddCommand(draftClearCmd)
}

// draftView mirrors changes.Draft with YAML keys for display.
type draftView struct {
	Title             string   `yaml:"title"`
	Category          string   `yaml:"category"`
	SystemsAffected   []string `yaml:"systems_affected"`
	PlannedStart      string   `yaml:"planned_start"`
	PlannedEnd        string   `yaml:"planned_end"`
	Implementer       string   `yaml:"implementer"`
	ImpactLevel       string   `yaml:"impact_level"`
	UserImpact        string   `yaml:"user_impact"`
	MaintenanceWindow *string  `yaml:"maintenance_window,omitempty"`
	BackoutPlan       string   `yaml:"backout_plan"`
	WhatChanged       string   `yaml:"what_changed"`
	TicketID          string   `yaml:"ticket_id"`
	Links             []string `yaml:"links"`
	Status            string   `yaml:"status"`
	OutcomeNotes      string   `yaml:"outcome_notes"`
	PostChangeIssues  string   `yaml:"post_change_issues"`
}

func showDraft(w io.Writer, c config.Config) error {
	store, err := newDraftStore(c, logger)
	if err != nil {
		return err
	}
	d, ok, err := store.Load()
	if err != nil {
		return err
	}
	if !ok {
		_, err := fmt.Fprintln(w, "No saved draft.")
		return err
	}
	out, err := yaml.Marshal(draftView(d))
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	_, err = w.Write(out)
	return err
}

func clearDraft(w io.Writer, c config.Config) error {
	store, err := newDraftStore(c, logger)
	if err != nil {
		return err
	}
	if err := store.Clear(); err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, "Draft cleared.")
	return err
}
