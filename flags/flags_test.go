package flags_test

import (
	"testing"

	"github.com/leftmike/colfilter/flags"
)

func TestFlags(t *testing.T) {
	flgs := flags.Default()
	if !flgs.GetFlag(flags.HumanNumbers) {
		t.Errorf("Default().GetFlag(HumanNumbers) got false want true")
	}
	if flgs.GetFlag(flags.LogFilterTree) {
		t.Errorf("Default().GetFlag(LogFilterTree) got true want false")
	}

	f, ok := flags.LookupFlag("HUMAN_NUMBERS")
	if !ok || f != flags.HumanNumbers {
		t.Errorf("LookupFlag(HUMAN_NUMBERS) got %d, %v want %d, true", f, ok,
			flags.HumanNumbers)
	}
	if _, ok := flags.LookupFlag("pushdown"); ok {
		t.Errorf("LookupFlag(pushdown) got true want false")
	}

	var nams []string
	flags.ListFlags(func(nam string, f flags.Flag) {
		nams = append(nams, nam)
	})
	if len(nams) != 2 || nams[0] != "human_numbers" || nams[1] != "log_filter_tree" {
		t.Errorf("ListFlags() got %v", nams)
	}

	flgs.SetFlag(flags.HumanNumbers, false)
	if flgs.GetFlag(flags.HumanNumbers) {
		t.Errorf("SetFlag(HumanNumbers, false) did not change flag")
	}
}
