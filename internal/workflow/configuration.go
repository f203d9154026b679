package workflow

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	configurationLoadErrorTemplateConstant       = "failed to load workflow configuration: %w"
	configurationParseErrorTemplateConstant      = "failed to parse workflow configuration: %w"
	configurationPathRequiredMessageConstant     = "workflow configuration path must be provided"
	configurationEmptyStepsMessageConstant       = "workflow configuration must define at least one step"
	configurationOperationMissingMessageConstant = "workflow step missing operation name"
	unsupportedOperationTemplateConstant         = "unsupported workflow operation: %s"
)

// OperationType identifies supported workflow operations.
type OperationType string

// Supported workflow operations.
const (
	OperationTypePlan  OperationType = OperationType("plan")
	OperationTypeApply OperationType = OperationType("apply")
	OperationTypeCheck OperationType = OperationType("check")
)

var supportedOperationTypes = map[OperationType]struct{}{
	OperationTypePlan:  {},
	OperationTypeApply: {},
	OperationTypeCheck: {},
}

// Configuration describes the ordered workflow steps loaded from YAML.
type Configuration struct {
	Steps []StepConfiguration `yaml:"steps" json:"steps"`
}

// StepConfiguration associates an operation type with declarative options.
type StepConfiguration struct {
	Operation       OperationType  `yaml:"operation" json:"operation"`
	Options         map[string]any `yaml:"with" json:"with"`
	ContinueOnError bool           `yaml:"continue_on_error" json:"continue_on_error"`
}

// LoadConfiguration reads and validates the workflow configuration at the provided path.
func LoadConfiguration(configurationPath string) (Configuration, error) {
	trimmedPath := strings.TrimSpace(configurationPath)
	if len(trimmedPath) == 0 {
		return Configuration{}, errors.New(configurationPathRequiredMessageConstant)
	}

	contentBytes, readError := os.ReadFile(trimmedPath)
	if readError != nil {
		return Configuration{}, fmt.Errorf(configurationLoadErrorTemplateConstant, readError)
	}

	var configuration Configuration
	if unmarshalError := yaml.Unmarshal(contentBytes, &configuration); unmarshalError != nil {
		return Configuration{}, fmt.Errorf(configurationParseErrorTemplateConstant, unmarshalError)
	}

	if len(configuration.Steps) == 0 {
		var wrapper struct {
			Workflow Configuration `yaml:"workflow" json:"workflow"`
		}
		if nestedError := yaml.Unmarshal(contentBytes, &wrapper); nestedError == nil {
			configuration = wrapper.Workflow
		}
	}

	if validationError := configuration.validate(); validationError != nil {
		return Configuration{}, validationError
	}

	return configuration, nil
}

func (configuration Configuration) validate() error {
	if len(configuration.Steps) == 0 {
		return errors.New(configurationEmptyStepsMessageConstant)
	}

	for _, step := range configuration.Steps {
		trimmedOperation := OperationType(strings.TrimSpace(string(step.Operation)))
		if len(trimmedOperation) == 0 {
			return errors.New(configurationOperationMissingMessageConstant)
		}
		if _, operationSupported := supportedOperationTypes[trimmedOperation]; !operationSupported {
			return fmt.Errorf(unsupportedOperationTemplateConstant, step.Operation)
		}
	}

	return nil
}
