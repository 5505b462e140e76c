package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/event-forecast/pkg/projection"
)

func TestLoadConfiguration(t *testing.T) {
	tests := []struct {
		name       string
		configPath string
		wantError  bool
	}{
		{
			name:       "Non-existent config file",
			configPath: "nonexistent.yaml",
			wantError:  true,
		},
		{
			name:       "Example config file",
			configPath: "../../test/test_config.yaml",
			wantError:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadConfiguration(tt.configPath)
			if tt.wantError {
				if err == nil {
					t.Errorf("LoadConfiguration() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("LoadConfiguration() error = %v", err)
				return
			}
			if config == nil {
				t.Errorf("LoadConfiguration() returned nil config")
			}
		})
	}
}

func TestLoadConfigurationStructure(t *testing.T) {
	config, err := LoadConfiguration("../../test/test_config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if config.Logging.Level != "info" {
		t.Errorf("Expected logging level info, got %q", config.Logging.Level)
	}
	if config.Output.Format != "pretty" {
		t.Errorf("Expected output format pretty, got %q", config.Output.Format)
	}

	if config.Budget.Name != "Spring Retreat" {
		t.Errorf("Expected budget name Spring Retreat, got %q", config.Budget.Name)
	}
	if len(config.Budget.LineItems) != 3 {
		t.Fatalf("Expected 3 line items, got %d", len(config.Budget.LineItems))
	}
	if got, err := projection.TotalCost(config.Budget.LineItems); err != nil || got != 10000 {
		t.Errorf("Expected total cost 10000, got %v (err %v)", got, err)
	}
	if got := config.Budget.LineItems[0].HistoricalCosts["2024"]; got != 5600 {
		t.Errorf("Expected 2024 venue cost 5600, got %v", got)
	}

	expectedScenarios := []string{"baseline", "generous comps", "archived"}
	if len(config.Scenarios) != len(expectedScenarios) {
		t.Fatalf("Expected %d scenarios, got %d", len(expectedScenarios), len(config.Scenarios))
	}
	for i, expectedName := range expectedScenarios {
		if config.Scenarios[i].Name != expectedName {
			t.Errorf("Expected scenario name %s, got %s", expectedName, config.Scenarios[i].Name)
		}
	}

	baseline := config.Scenarios[0].Inputs
	if baseline.StaffCount != 14 || baseline.MaxOccupancy != 75 {
		t.Errorf("Unexpected baseline capacity: staff %d, occupancy %d", baseline.StaffCount, baseline.MaxOccupancy)
	}
	if baseline.TicketPrices.ProposedPrice2 != 250 || baseline.TicketPrices.StaffPrice3 != 220 {
		t.Errorf("Unexpected baseline ticket prices: %+v", baseline.TicketPrices)
	}
	if comps := config.Scenarios[1].Inputs.ComplimentaryTickets; comps != 20 {
		t.Errorf("Expected 20 complimentary tickets, got %d", comps)
	}
}

func TestLoadConfigurationAssignsIDs(t *testing.T) {
	config, err := LoadConfiguration("../../test/test_config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if config.Budget.ID == "" {
		t.Error("Expected budget ID to be assigned")
	}
	if config.Budget.LineItems[0].ID != "venue" {
		t.Errorf("Expected explicit line item ID to be kept, got %q", config.Budget.LineItems[0].ID)
	}
	if config.Budget.LineItems[2].ID == "" {
		t.Error("Expected missing line item ID to be assigned")
	}
	if config.Scenarios[0].ID != "baseline" {
		t.Errorf("Expected explicit scenario ID to be kept, got %q", config.Scenarios[0].ID)
	}
	if config.Scenarios[1].ID == "" || config.Scenarios[1].ID == config.Scenarios[2].ID {
		t.Errorf("Expected distinct generated scenario IDs, got %q and %q", config.Scenarios[1].ID, config.Scenarios[2].ID)
	}
}

func TestLoadConfigurationFromReader(t *testing.T) {
	data := `
budget:
  name: Reader Budget
  lineItems:
    - name: Hall
      category: Venue
      unitCost: 500
      quantity: 2
scenarios:
  - name: only
    active: true
    inputs:
      staffCount: 2
      maxOccupancy: 12
      ticketPrices:
        proposedPrice1: 100
        staffPrice1: 50
`
	config, err := LoadConfigurationFromReader(strings.NewReader(data))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}
	if config.Budget.Name != "Reader Budget" {
		t.Errorf("Expected budget name Reader Budget, got %q", config.Budget.Name)
	}
	if got, err := projection.TotalCost(config.Budget.LineItems); err != nil || got != 1000 {
		t.Errorf("Expected total cost 1000, got %v (err %v)", got, err)
	}
	if len(config.ActiveScenarios()) != 1 {
		t.Errorf("Expected 1 active scenario, got %d", len(config.ActiveScenarios()))
	}
}

func TestLoadConfigurationFromReaderInvalid(t *testing.T) {
	if _, err := LoadConfigurationFromReader(strings.NewReader("budget: [unclosed")); err == nil {
		t.Error("LoadConfigurationFromReader() expected error for malformed YAML")
	}
}

func TestLoadConfigurationTempFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "budget:\n  name: Temp\nscenarios: []\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	config, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if config.Budget.Name != "Temp" {
		t.Errorf("Expected budget name Temp, got %q", config.Budget.Name)
	}
}

func TestActiveScenarios(t *testing.T) {
	config, err := LoadConfiguration("../../test/test_config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	active := config.ActiveScenarios()
	if len(active) != 2 {
		t.Fatalf("Expected 2 active scenarios, got %d", len(active))
	}
	for _, scenario := range active {
		if scenario.Name == "archived" {
			t.Error("Inactive scenario returned by ActiveScenarios()")
		}
	}
}

func TestValidateConfiguration(t *testing.T) {
	config, err := LoadConfiguration("../../test/test_config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if warnings := config.ValidateConfiguration(); len(warnings) != 0 {
		t.Errorf("Expected no warnings for example config, got %v", warnings)
	}
}

func TestValidateConfigurationWarnings(t *testing.T) {
	conf := Configuration{
		Budget: projection.Budget{
			Name: "No Food",
			LineItems: []projection.LineItem{
				{Name: "Hall", Category: "Venue", UnitCost: 1000, Quantity: 1},
			},
		},
		Scenarios: []projection.Scenario{
			{
				Name:   "crowded",
				Active: true,
				Inputs: projection.Inputs{
					StaffCount:   20,
					MaxOccupancy: 10,
					TicketPrices: projection.TicketPrices{ProposedPrice1: 100, StaffPrice1: 50},
				},
			},
		},
	}

	warnings := conf.ValidateConfiguration()
	if len(warnings) != 2 {
		t.Fatalf("Expected 2 warnings, got %d: %v", len(warnings), warnings)
	}
	if !strings.Contains(warnings[0], "no food category") {
		t.Errorf("Expected food warning first, got %q", warnings[0])
	}
	if !strings.Contains(warnings[1], "no GA tickets") {
		t.Errorf("Expected capacity warning, got %q", warnings[1])
	}
}

func TestValidateConfigurationRecognisesFoodAliases(t *testing.T) {
	conf := Configuration{
		Budget: projection.Budget{
			Name: "Aliased",
			LineItems: []projection.LineItem{
				{Name: "Lunch", Category: "F&B", UnitCost: 10, Quantity: 1},
			},
		},
		Scenarios: []projection.Scenario{
			{
				Name:   "ok",
				Active: true,
				Inputs: projection.Inputs{
					MaxOccupancy: 10,
					TicketPrices: projection.TicketPrices{ProposedPrice1: 100, StaffPrice1: 50},
				},
			},
		},
	}

	for _, warning := range conf.ValidateConfiguration() {
		if strings.Contains(warning, "food") {
			t.Errorf("Unexpected food warning: %q", warning)
		}
	}
}
