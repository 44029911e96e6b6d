package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jwebster45206/pet-adventure/pkg/save"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <save.json>...\n", os.Args[0])
		os.Exit(1)
	}

	failed := 0
	for _, filename := range os.Args[1:] {
		fmt.Printf("Validating %s...\n", filename)
		if err := validateFile(filename); err != nil {
			fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
			failed++
			continue
		}
		fmt.Printf("%s is a valid save file!\n", filename)
	}

	if failed > 0 {
		os.Exit(1)
	}
}

func validateFile(filename string) error {
	if !strings.HasSuffix(filepath.Base(filename), ".json") {
		return fmt.Errorf("save file must have .json extension: %s", filepath.Base(filename))
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return validateData(filename, data)
}

func validateData(filename string, data []byte) error {
	if !json.Valid(data) {
		return fmt.Errorf("file %s contains invalid JSON", filename)
	}

	// Parse is lenient; the strict pass catches typos in field names.
	var strict save.Data
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&strict); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("file %s failed strict JSON unmarshaling: %w", filename, err)
	}

	d, err := save.Parse(data)
	if err != nil {
		return fmt.Errorf("file %s: %w", filename, err)
	}
	if err := d.Validate(); err != nil {
		var lines []string
		for _, line := range strings.Split(err.Error(), "\n") {
			lines = append(lines, "  - "+line)
		}
		return fmt.Errorf("validation errors in %s:\n%s", filename, strings.Join(lines, "\n"))
	}
	return nil
}
