package service

import (
	"context"
	"errors"
	"testing"
)

func TestGetConfigurationMissingKeyReturnsPlaceholder(t *testing.T) {
	svc := NewConfigurationService(newFakeConfigRepo())

	got, err := svc.GetConfiguration(context.Background(), "store_banner")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.ConfigKey != "store_banner" || got.ConfigValue != "" {
		t.Fatalf("expected an empty placeholder, got %+v", got)
	}
}

func TestCreateConfigurationDuplicateKey(t *testing.T) {
	repo := newFakeConfigRepo()
	svc := NewConfigurationService(repo)

	if _, err := svc.CreateConfiguration(context.Background(), CreateConfigurationRequest{
		ConfigKey:   "support_phone",
		ConfigValue: "555-0100",
	}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err := svc.CreateConfiguration(context.Background(), CreateConfigurationRequest{
		ConfigKey:   "support_phone",
		ConfigValue: "555-0200",
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestUpdateConfigurationValue(t *testing.T) {
	repo := newFakeConfigRepo()
	svc := NewConfigurationService(repo)

	created, err := svc.CreateConfiguration(context.Background(), CreateConfigurationRequest{
		ConfigKey:   "currency",
		ConfigValue: "USD",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	value := "EUR"
	updated, err := svc.UpdateConfiguration(context.Background(), created.ID, UpdateConfigurationRequest{ConfigValue: &value})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.ConfigValue != "EUR" || updated.ConfigKey != "currency" {
		t.Fatalf("unexpected result %+v", updated)
	}

	got, err := svc.GetConfiguration(context.Background(), "currency")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.ConfigValue != "EUR" {
		t.Fatalf("stored value not updated: %q", got.ConfigValue)
	}
}

func TestDeleteConfiguration(t *testing.T) {
	repo := newFakeConfigRepo()
	svc := NewConfigurationService(repo)

	created, err := svc.CreateConfiguration(context.Background(), CreateConfigurationRequest{ConfigKey: "maintenance_mode", ConfigValue: "off"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.DeleteConfiguration(context.Background(), created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.DeleteConfiguration(context.Background(), created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on replay, got %v", err)
	}
}
