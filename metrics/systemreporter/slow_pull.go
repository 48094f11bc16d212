package systemreporter

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"code.cloudfoundry.org/commandrunner"
	"code.cloudfoundry.org/lager/v3"
)

// SlowPullReporter logs a snapshot of the host when pulling layers took
// longer than the threshold. A zero threshold turns it off.
type SlowPullReporter struct {
	threshold   time.Duration
	cmdRunner   commandrunner.CommandRunner
	diagnostics []diagnostic
}

// diagnostic is one host command and the report field its output fills.
type diagnostic struct {
	args  []string
	trim  func(string) string
	store func(*Report, string)
}

func NewSlowPullReporter(threshold time.Duration, diskPath string, cmdRunner commandrunner.CommandRunner) *SlowPullReporter {
	return &SlowPullReporter{
		threshold:   threshold,
		cmdRunner:   cmdRunner,
		diagnostics: []diagnostic{
			{args: []string{"ss", "-tn"}, store: func(r *Report, out string) { r.Sockets = out }},
			{args: []string{"ip", "-s", "link"}, store: func(r *Report, out string) { r.Interfaces = out }},
			{args: []string{"df", "-h", diskPath}, store: func(r *Report, out string) { r.DiskUsage = out }},
			{args: []string{"vmstat"}, store: func(r *Report, out string) { r.VmStat = out }},
			{args: []string{"iostat", "-xz"}, store: func(r *Report, out string) { r.IoStat = out }},
			{args: []string{"ps", "-aux", "--sort", "-pcpu"}, trim: firstLines(10), store: func(r *Report, out string) { r.TopProcessesByCPU = out }},
			{args: []string{"dmesg"}, trim: lastLines(100), store: func(r *Report, out string) { r.Dmesg = out }},
		},
	}
}

func (r *SlowPullReporter) Report(logger lager.Logger, duration time.Duration) {
	if r.threshold <= 0 || duration < r.threshold {
		return
	}

	logger = logger.Session("slow-pull-reporter", lager.Data{"duration": duration, "threshold": r.threshold})

	var report Report
	for _, d := range r.diagnostics {
		out := r.run(d.args)
		if d.trim != nil {
			out = d.trim(out)
		}
		d.store(&report, out)
	}

	logger.Info("threshold-reached", lager.Data{"report": report})
}

// run never fails: a broken diagnostic becomes part of the report.
func (r *SlowPullReporter) run(args []string) string {
	var output bytes.Buffer
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdout = &output
	cmd.Stderr = &output

	if err := r.cmdRunner.Run(cmd); err != nil {
		return fmt.Sprintf("`%s` failed (%s): %s", strings.Join(args, " "), err, output.String())
	}

	return output.String()
}

func firstLines(n int) func(string) string {
	return func(text string) string {
		lines := strings.Split(text, "\n")
		if len(lines) <= n {
			return text
		}
		return strings.Join(lines[:n], "\n")
	}
}

func lastLines(n int) func(string) string {
	return func(text string) string {
		lines := strings.Split(text, "\n")
		if len(lines) <= n {
			return text
		}
		return strings.Join(lines[len(lines)-n:], "\n")
	}
}
