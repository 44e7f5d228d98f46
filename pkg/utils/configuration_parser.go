package utils

import (
	"os"
	"path/filepath"

	"github.com/janael-pinheiro/maceration-driver-golang/pkg/entities"
	"gopkg.in/yaml.v2"
)

type config interface {
	entities.MacerationConfig
}

func readTextFile(filepathName string) ([]byte, error) {
	fileContent, err := os.ReadFile(filepath.Clean(filepathName))
	return fileContent, err
}

// ConfigurationParser decodes a YAML file into configEntity. Unknown keys are rejected.
func ConfigurationParser[T config](filepathName string, configEntity T) (T, error) {
	fileContent, err := readTextFile(filepath.Clean(filepathName))
	if err != nil {
		return configEntity, err
	}

	err = yaml.UnmarshalStrict(fileContent, &configEntity)
	return configEntity, err
}
