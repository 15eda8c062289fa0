package deps

import (
	"context"
	"database/sql"
	"os/exec"
	"regexp"
	"runtime"
	"strings"

	"golang.org/x/mod/semver"
)

// MinGoVersion is the oldest toolchain the checks accept.
const MinGoVersion = "v1.24.0"

// Check is one row of the report.
type Check struct {
	Component string
	Version   string
	OK        bool
}

// Block groups checks under a heading.
type Block struct {
	Name   string
	Checks []Check
}

// Probe abstracts the host lookups so tests can fake them.
type Probe struct {
	LookPath  func(file string) (string, error)
	Output    func(ctx context.Context, name string, args ...string) (string, error)
	Drivers   func() []string
	GoVersion string
}

// HostProbe inspects the running system.
func HostProbe() Probe {
	return Probe{
		LookPath: exec.LookPath,
		Output: func(ctx context.Context, name string, args ...string) (string, error) {
			out, err := exec.CommandContext(ctx, name, args...).Output()
			return string(out), err
		},
		Drivers:   sql.Drivers,
		GoVersion: runtime.Version(),
	}
}

var (
	goVersionRe  = regexp.MustCompile(`go(\d+\.\d+(?:\.\d+)?)`)
	gitVersionRe = regexp.MustCompile(`git version (\d+\.\d+(?:\.\d+)?)`)
)

// Collect runs every check.
func Collect(ctx context.Context, p Probe, requiredDrivers []string) []Block {
	runtimeVersion := match(goVersionRe, p.GoVersion)
	framework := Block{Name: "Framework", Checks: []Check{
		{
			Component: "Go runtime ( >= " + strings.TrimPrefix(MinGoVersion, "v") + " )",
			Version:   runtimeVersion,
			OK:        atLeast(runtimeVersion, MinGoVersion),
		},
		binaryCheck(ctx, p, "Go toolchain", "go", []string{"version"}, goVersionRe, MinGoVersion),
		binaryCheck(ctx, p, "Git", "git", []string{"--version"}, gitVersionRe, ""),
	}}

	registered := make(map[string]bool)
	for _, d := range p.Drivers() {
		registered[d] = true
	}
	drivers := Block{Name: "Database drivers"}
	for _, d := range requiredDrivers {
		drivers.Checks = append(drivers.Checks, Check{Component: d + " driver", OK: registered[d]})
	}
	return []Block{framework, drivers}
}

func binaryCheck(ctx context.Context, p Probe, component, bin string, args []string, re *regexp.Regexp, minVersion string) Check {
	check := Check{Component: component + " binary"}
	if minVersion != "" {
		check.Component += " ( >= " + strings.TrimPrefix(minVersion, "v") + " )"
	}
	if _, err := p.LookPath(bin); err != nil {
		return check
	}
	out, err := p.Output(ctx, bin, args...)
	if err != nil {
		return check
	}
	check.Version = match(re, out)
	check.OK = check.Version != "" && (minVersion == "" || atLeast(check.Version, minVersion))
	return check
}

func match(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	return m[1]
}

func atLeast(version, minVersion string) bool {
	v := "v" + version
	return semver.IsValid(v) && semver.Compare(v, minVersion) >= 0
}
