//go:build mage
// +build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Format runs gofmt on all Go files
func Format() error {
	fmt.Println("Running gofmt...")
	return sh.RunV("gofmt", "-w", ".")
}

// Vet runs go vet on all packages
func Vet() error {
	fmt.Println("Running go vet...")
	return sh.RunV("go", "vet", "./...")
}

// Test runs all tests
func Test() error {
	fmt.Println("Running tests...")
	return sh.RunV("go", "test", "./...")
}

// Build builds all packages
func Build() error {
	fmt.Println("Building packages...")
	return sh.RunV("go", "build", "./...")
}

// Check syntax-checks the example sources with the freshly built CLI
func Check() error {
	fmt.Println("Checking examples...")
	return sh.RunV("go", "run", "./cmd/mvir", "check", "--unit", "auto",
		"examples/bank/bank.mvir", "examples/bank/transfer.mvir")
}

// PreCommit runs all pre-commit checks (format, vet, test, build, check)
func PreCommit() error {
	fmt.Println("Running pre-commit checks...")
	mg.Deps(Format)
	mg.Deps(Vet)
	mg.Deps(Test)
	mg.Deps(Build)
	mg.Deps(Check)
	fmt.Println("✓ All pre-commit checks passed!")
	return nil
}

// CI runs all CI checks
func CI() error {
	fmt.Println("Running CI checks...")
	if err := PreCommit(); err != nil {
		return err
	}
	fmt.Println("✓ All CI checks passed!")
	return nil
}

// Clean removes build artifacts
func Clean() error {
	fmt.Println("Cleaning build artifacts...")
	patterns := []string{
		"mvir",
		"*.test",
	}
	for _, pattern := range patterns {
		if err := sh.Run("sh", "-c", "rm -f "+pattern); err != nil {
			fmt.Printf("Warning: failed to clean %s: %v\n", pattern, err)
		}
	}
	fmt.Println("✓ Clean complete!")
	return nil
}

// Default target runs PreCommit
var Default = PreCommit
