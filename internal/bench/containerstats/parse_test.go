// Copyright 2025 Esteban Alvarez. All Rights Reserved.
//
// Created: October 2025
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package containerstats

import "testing"

func TestParseMemorySize(t *testing.T) {
	testCases := []struct {
		in      string
		want    uint64
		wantErr bool
	}{
		{"1.5GiB", 1610612736, false},
		{"512MiB", 536870912, false},
		{"1024KiB", 1048576, false},
		{"7B", 7, false},
		{"1.0XB", 0, true},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := parseMemorySize(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("parseMemorySize(%q) expected error, got %d", tc.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseMemorySize(%q) unexpected error: %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("parseMemorySize(%q) = %d, want %d", tc.in, got, tc.want)
			}
		})
	}
}

func TestParseCPUPercent(t *testing.T) {
	testCases := []struct {
		in   string
		want float64
	}{
		{"0.00%", 0},
		{"12.34%", 12.34},
		{"100.00%", 100},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := parseCPUPercent(tc.in)
			if err != nil {
				t.Fatalf("parseCPUPercent(%q) unexpected error: %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("parseCPUPercent(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}
