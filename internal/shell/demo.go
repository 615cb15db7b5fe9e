package shell

import (
	"context"
	"fmt"
	"io"

	"github.com/ekisa-team/speeddial/internal/service"
	"github.com/ekisa-team/speeddial/internal/speeddial"
)

// Demo walks through the registry operations and their failure cases,
// writing a transcript to w. svc must be built from config.Default so that
// the default directory names exist and no entries are present.
func Demo(ctx context.Context, svc *service.SpeedDial, w io.Writer) error {
	step := func(title string) {
		fmt.Fprintf(w, "\n--- %s ---\n", title)
	}
	report := func(what string, err error) {
		if err != nil {
			fmt.Fprintf(w, "  %s: failed: %s\n", what, describe(err))
			return
		}
		fmt.Fprintf(w, "  %s: ok\n", what)
	}
	lookup := func(dir, code string) {
		number, err := svc.PhoneNumber(dir, code)
		if err != nil {
			fmt.Fprintf(w, "  get %s/%s: not found: %s\n", dir, code, describe(err))
			return
		}
		fmt.Fprintf(w, "  get %s/%s: %s\n", dir, code, number)
	}

	if err := PrintDirectories(w, svc); err != nil {
		return err
	}

	step("Adding sample numbers")
	samples := []struct{ dir, code, number, name string }{
		{"Directory 1", "home", "123-456-7890", ""},
		{"Directory 1", "work", "987-654-3210", ""},
		{"Directory 1", "mom", "555-111-2222", "Mom"},
		{"Directory 2", "friend1", "111-222-3333", ""},
		{"Directory 2", "friend2", "444-555-6666", ""},
		{"Directory 5", "emergency", "911", "Emergency services"},
	}
	for _, s := range samples {
		_, err := svc.AddEntry(s.dir, speeddial.Entry{Code: s.code, Number: s.number, Name: s.name})
		report(fmt.Sprintf("add %s/%s", s.dir, s.code), err)
	}

	step("Demonstrating add number error cases")
	report("add Directory 6/test", svc.AddNumber("Directory 6", "test", "000-000-0000"))
	report("add Directory 1/home again", svc.AddNumber("Directory 1", "home", "123-999-8888"))

	step("Demonstrating directory capacity limit (filling Directory 3)")
	info, err := svc.Directory("Directory 3")
	if err != nil {
		return err
	}
	added := 0
	for i := range info.Capacity {
		if svc.AddNumber("Directory 3", fmt.Sprintf("contact%d", i), fmt.Sprintf("000-000-%04d", i)) == nil {
			added++
		}
	}
	fmt.Fprintf(w, "  filled Directory 3 with %d entries\n", added)
	report("add Directory 3/overflow", svc.AddNumber("Directory 3", "overflow", "999-999-9999"))

	step("Retrieving numbers")
	lookup("Directory 1", "mom")
	lookup("Directory 2", "friend2")
	lookup("Directory 1", "dad")
	lookup("Directory 7", "any")

	for _, dir := range []string{"Directory 1", "Directory 2", "Directory 4"} {
		if err := PrintDirectory(w, svc, dir); err != nil {
			return err
		}
	}

	step("Removing numbers")
	report("remove Directory 1/work", svc.RemoveNumber("Directory 1", "work"))
	report("remove Directory 2/nonexistent", svc.RemoveNumber("Directory 2", "nonexistent"))
	report("remove Directory 6/any", svc.RemoveNumber("Directory 6", "any"))

	if err := PrintDirectory(w, svc, "Directory 1"); err != nil {
		return err
	}

	step("Dialing")
	entry, err := svc.Dial(ctx, "Directory 5", "emergency")
	report(fmt.Sprintf("dial Directory 5/emergency (%s, %s)", entry.Number, entry.Name), err)

	step("Demonstration complete")
	return nil
}
