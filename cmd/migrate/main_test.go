package main

import "testing"

func TestRunRequiresCommand(t *testing.T) {
	if err := run(nil); err == nil {
		t.Error("expected usage error without a command")
	}
}

func TestStepArg(t *testing.T) {
	cases := []struct {
		name    string
		args    []string
		want    int
		wantErr bool
	}{
		{"default", []string{"down"}, 1, false},
		{"explicit", []string{"down", "3"}, 3, false},
		{"zero", []string{"down", "0"}, 0, true},
		{"garbage", []string{"down", "x"}, 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := stepArg(tc.args)
			if (err != nil) != tc.wantErr {
				t.Fatalf("expected error %v, got %v", tc.wantErr, err)
			}
			if got != tc.want {
				t.Errorf("expected %d, got %d", tc.want, got)
			}
		})
	}
}
