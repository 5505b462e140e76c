// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/iwvelando/event-forecast/pkg/projection"
	"github.com/iwvelando/event-forecast/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for event-forecast.
type Configuration struct {
	Budget    projection.Budget     `yaml:"budget"`
	Scenarios []projection.Scenario `yaml:"scenarios"`
	Logging   LoggingConfig         `yaml:"logging,omitempty"`
	Output    OutputConfig          `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, json
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	configuration.AssignIDs()
	return &configuration, nil
}

// AssignIDs gives the budget, its line items and every scenario a random ID
// when the config left it blank.
func (c *Configuration) AssignIDs() {
	if strings.TrimSpace(c.Budget.ID) == "" {
		c.Budget.ID = uuid.NewString()
	}
	for i := range c.Budget.LineItems {
		if strings.TrimSpace(c.Budget.LineItems[i].ID) == "" {
			c.Budget.LineItems[i].ID = uuid.NewString()
		}
	}
	for i := range c.Scenarios {
		if strings.TrimSpace(c.Scenarios[i].ID) == "" {
			c.Scenarios[i].ID = uuid.NewString()
		}
	}
}

// ActiveScenarios returns the scenarios flagged active, in config order.
func (c *Configuration) ActiveScenarios() []projection.Scenario {
	var active []projection.Scenario
	for _, scenario := range c.Scenarios {
		if scenario.Active {
			active = append(active, scenario)
		}
	}
	return active
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	budget := validation.BudgetConfig{
		Name:          c.Budget.Name,
		LineItemCount: len(c.Budget.LineItems),
	}
	for _, item := range c.Budget.LineItems {
		if projection.IsFoodCategory(projection.CategoryName(item)) {
			budget.HasFoodCategory = true
			break
		}
	}

	scenarios := make([]validation.ScenarioConfig, 0, len(c.Scenarios))
	for _, scenario := range c.Scenarios {
		inputs := scenario.Inputs
		scenarios = append(scenarios, validation.ScenarioConfig{
			Name:                 scenario.Name,
			Active:               scenario.Active,
			StaffCount:           inputs.StaffCount,
			MaxOccupancy:         inputs.MaxOccupancy,
			ComplimentaryTickets: inputs.ComplimentaryTickets,
			ProposedPrices:       inputs.TicketPrices.Proposed(),
			StaffPrices:          inputs.TicketPrices.Staff(),
		})
	}

	validator := validation.ConfigValidator{Budget: budget, Scenarios: scenarios}
	return validator.ValidateAll()
}
