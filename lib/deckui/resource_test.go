// Copyright 2026 The Estatedeck Authors
// SPDX-License-Identifier: Apache-2.0

package deckui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/estatedeck/estatedeck/lib/api"
)

// mutationCounts records how many times the stubbed network calls ran.
type mutationCounts struct {
	creates int
	removes int
}

// newMutationTestModel builds a resource screen over stubbed network
// calls so the list/form/delete state machine can be driven directly.
func newMutationTestModel(invalidatesDashboard bool, counts *mutationCounts) resourceModel {
	config := resourceConfig{
		screen:  ScreenProperties,
		columns: []tableColumn{{title: "Name", width: 12}},
		fetch: func(ctx context.Context, deps *Deps) (resourceData, error) {
			return resourceData{rows: []tableRow{{id: "row-1", cells: []string{"refetched"}}}}, nil
		},
		buildForm: func(data resourceData, editingID string) *Form {
			return NewForm("Test", []FormField{TextField("name", "Name", "Alpha", true)})
		},
		buildPayload: func(values map[string]string, editingID string, data resourceData) map[string]any {
			return map[string]any{"name": values["name"]}
		},
		create: func(ctx context.Context, client *api.Client, payload map[string]any) error {
			counts.creates++
			return nil
		},
		update: func(ctx context.Context, client *api.Client, id string, payload map[string]any) error {
			return nil
		},
		remove: func(ctx context.Context, client *api.Client, id string) error {
			counts.removes++
			return nil
		},
		invalidatesDashboard: invalidatesDashboard,
	}
	return newResourceModel(&Deps{}, config, ThemeForDark(true), DefaultKeyMap)
}

// runBatch executes the command, fans out its batch, and collects the
// first want results. Commands scheduled on a timer (the notice fade)
// deliberately arrive later than the window and are not awaited.
func runBatch(t *testing.T, cmd tea.Cmd, want int) []tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	message := cmd()
	batch, ok := message.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{message}
	}

	results := make(chan tea.Msg, len(batch))
	for _, sub := range batch {
		go func() { results <- sub() }()
	}

	var collected []tea.Msg
	deadline := time.After(2 * time.Second)
	for len(collected) < want {
		select {
		case message := <-results:
			collected = append(collected, message)
		case <-deadline:
			t.Fatalf("collected %d of %d batch results", len(collected), want)
		}
	}
	return collected
}

func TestMutationSuccessClosesFormAndRefetches(t *testing.T) {
	counts := &mutationCounts{}
	model := newMutationTestModel(false, counts)
	model.form = model.config.buildForm(model.data, "")
	model.editingID = "row-1"
	model.confirmDeleteID = "row-1"
	model.mutating = true

	cmd := model.handleMutated(resourceMutatedMsg{screen: model.config.screen, verb: "updated"})
	if cmd == nil {
		t.Fatal("success must return a command")
	}
	if model.form != nil {
		t.Error("success must close the form")
	}
	if model.editingID != "" {
		t.Errorf("editingID = %q, want cleared", model.editingID)
	}
	if model.confirmDeleteID != "" {
		t.Errorf("confirmDeleteID = %q, want cleared", model.confirmDeleteID)
	}
	if model.mutating {
		t.Error("completion must release the in-flight guard")
	}
	if !model.loading {
		t.Error("success must start a refetch")
	}
	if model.notice != "Record updated" || model.noticeIsError {
		t.Errorf("notice = %q (error=%v), want success notice", model.notice, model.noticeIsError)
	}

	messages := runBatch(t, cmd, 1)
	fetched, ok := messages[0].(resourceFetchedMsg)
	if !ok {
		t.Fatalf("batch result = %T, want resourceFetchedMsg", messages[0])
	}
	if fetched.screen != model.config.screen {
		t.Errorf("fetched screen = %v, want %v", fetched.screen, model.config.screen)
	}
}

func TestMutationSuccessInvalidatesDashboard(t *testing.T) {
	counts := &mutationCounts{}
	model := newMutationTestModel(true, counts)

	cmd := model.handleMutated(resourceMutatedMsg{screen: model.config.screen, verb: "created"})

	sawInvalidate := false
	for _, message := range runBatch(t, cmd, 2) {
		if _, ok := message.(DashboardInvalidatedMsg); ok {
			sawInvalidate = true
		}
	}
	if !sawInvalidate {
		t.Error("success on an aggregate-affecting screen must emit DashboardInvalidatedMsg")
	}
}

func TestMutationFailureLeavesStateUntouched(t *testing.T) {
	counts := &mutationCounts{}
	model := newMutationTestModel(false, counts)
	model.handleFetched(resourceFetchedMsg{
		screen: model.config.screen,
		data:   resourceData{rows: []tableRow{{id: "row-1", cells: []string{"Alpha"}, searchText: "alpha"}}},
	})

	form := model.config.buildForm(model.data, "row-1")
	model.form = form
	model.editingID = "row-1"
	model.mutating = true

	cmd := model.handleMutated(resourceMutatedMsg{screen: model.config.screen, verb: "updated", err: errors.New("boom")})
	if cmd == nil {
		t.Fatal("failure still schedules the notice fade")
	}
	if model.form != form {
		t.Error("failure must leave the form open for correction")
	}
	if model.editingID != "row-1" {
		t.Errorf("editingID = %q, want row-1", model.editingID)
	}
	if model.loading {
		t.Error("failure must not refetch")
	}
	if len(model.visible) != 1 || model.visible[0].id != "row-1" {
		t.Errorf("visible rows changed: %v", model.visible)
	}
	if model.notice != "Request failed" || !model.noticeIsError {
		t.Errorf("notice = %q (error=%v), want error notice", model.notice, model.noticeIsError)
	}
	if model.mutating {
		t.Error("failure must release the in-flight guard so retry works")
	}
}

func TestRepeatSubmitDispatchesOnce(t *testing.T) {
	counts := &mutationCounts{}
	model := newMutationTestModel(false, counts)
	model.form = model.config.buildForm(model.data, "")

	first := model.submit()
	if first == nil {
		t.Fatal("first submit must dispatch")
	}
	if second := model.submit(); second != nil {
		t.Error("submit while a mutation is in flight must be ignored")
	}

	first()
	if counts.creates != 1 {
		t.Errorf("creates = %d, want 1", counts.creates)
	}
}

func TestRepeatDeleteConfirmDispatchesOnce(t *testing.T) {
	counts := &mutationCounts{}
	model := newMutationTestModel(false, counts)
	model.confirmDeleteID = "row-1"

	confirmKey := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}}
	first := model.handleConfirmKey(confirmKey)
	if first == nil {
		t.Fatal("first confirmation must dispatch the delete")
	}
	if second := model.handleConfirmKey(confirmKey); second != nil {
		t.Error("confirmation while the delete is in flight must be ignored")
	}

	first()
	if counts.removes != 1 {
		t.Errorf("removes = %d, want 1", counts.removes)
	}
}
