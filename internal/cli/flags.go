package cli

import (
	"github.com/spf13/pflag"

	"github.com/Makepad-fr/tada/internal/model"
)

// filterValue parses --filter at flag time so typos fail as usage errors.
type filterValue struct{ f *model.Filter }

func (v filterValue) String() string { return string(*v.f) }
func (v filterValue) Type() string   { return "filter" }

func (v filterValue) Set(s string) error {
	f, err := model.ParseFilter(s)
	if err != nil {
		return err
	}
	*v.f = f
	return nil
}

func addFilterFlag(fs *pflag.FlagSet, f *model.Filter) {
	*f = model.FilterAll
	fs.VarP(filterValue{f}, "filter", "f", "all, active or completed")
}
