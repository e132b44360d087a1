package models

import (
	"encoding/json"
	"testing"
)

func TestApexResultFlags(t *testing.T) {
	tests := []struct {
		name          string
		result        ApexResult
		wantCompiled  bool
		wantSucceeded bool
	}{
		{
			name:          "both flags absent means success",
			result:        ApexResult{},
			wantCompiled:  true,
			wantSucceeded: true,
		},
		{
			name:          "both flags true",
			result:        ApexResult{Compiled: boolPtr(true), Success: boolPtr(true)},
			wantCompiled:  true,
			wantSucceeded: true,
		},
		{
			name:          "compile failure",
			result:        ApexResult{Compiled: boolPtr(false), Success: boolPtr(false)},
			wantCompiled:  false,
			wantSucceeded: false,
		},
		{
			name:          "runtime failure",
			result:        ApexResult{Compiled: boolPtr(true), Success: boolPtr(false)},
			wantCompiled:  true,
			wantSucceeded: false,
		},
		{
			name:          "only success flag present and false",
			result:        ApexResult{Success: boolPtr(false)},
			wantCompiled:  true,
			wantSucceeded: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.result.CompiledOK(); got != tt.wantCompiled {
				t.Errorf("CompiledOK() = %v, want %v", got, tt.wantCompiled)
			}
			if got := tt.result.Succeeded(); got != tt.wantSucceeded {
				t.Errorf("Succeeded() = %v, want %v", got, tt.wantSucceeded)
			}
		})
	}
}

func TestApexResultUnmarshal(t *testing.T) {
	t.Run("compile failure payload", func(t *testing.T) {
		input := `{"compiled":false,"success":false,"compileProblem":"Unexpected token ')'.","line":3,"column":12,"logs":""}`

		var r ApexResult
		if err := json.Unmarshal([]byte(input), &r); err != nil {
			t.Fatalf("Unmarshal() error = %v", err)
		}
		if r.CompiledOK() {
			t.Error("CompiledOK() = true, want false")
		}
		if r.CompileProblem != "Unexpected token ')'." {
			t.Errorf("CompileProblem = %q", r.CompileProblem)
		}
		if r.Line != 3 || r.Column != 12 {
			t.Errorf("Line, Column = %d, %d, want 3, 12", r.Line, r.Column)
		}
	})

	t.Run("runtime failure payload", func(t *testing.T) {
		input := `{"compiled":true,"success":false,"exceptionMessage":"System.NullPointerException: Attempt to de-reference a null object","exceptionStackTrace":"AnonymousBlock: line 2, column 1","logs":"57.0 APEX_CODE,DEBUG"}`

		var r ApexResult
		if err := json.Unmarshal([]byte(input), &r); err != nil {
			t.Fatalf("Unmarshal() error = %v", err)
		}
		if !r.CompiledOK() {
			t.Error("CompiledOK() = false, want true")
		}
		if r.Succeeded() {
			t.Error("Succeeded() = true, want false")
		}
		if r.ExceptionMessage == "" || r.ExceptionStackTrace == "" {
			t.Error("expected exception detail to be populated")
		}
	})

	t.Run("legacy payload without flags", func(t *testing.T) {
		input := `{"logs":"57.0 APEX_CODE,DEBUG\nExecute Anonymous: System.debug('hi');"}`

		var r ApexResult
		if err := json.Unmarshal([]byte(input), &r); err != nil {
			t.Fatalf("Unmarshal() error = %v", err)
		}
		if !r.CompiledOK() || !r.Succeeded() {
			t.Error("absent flags should read as success")
		}
	})
}

// Helper function for tests
func boolPtr(b bool) *bool {
	return &b
}
