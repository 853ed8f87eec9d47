package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"sort"
	"strings"

	"github.com/Garsondee/Skirmish/internal/config"
	"github.com/Garsondee/Skirmish/internal/control"
	"github.com/Garsondee/Skirmish/internal/game"
)

const defaultScript = "attack,collect,right,attack,down,attack,mount,left,attack,up,filter"

// drainTicks bounds the final fade drain after the script ends.
const drainTicks = 1000

type setup struct {
	villagers int
	archers   int
	knights   int
	resources int
	rounds    int
	script    []control.Command
}

func (s setup) validate() error {
	var errs []error
	if s.villagers < 0 || s.archers < 0 || s.knights < 0 || s.resources < 0 {
		errs = append(errs, errors.New("spawn counts must not be negative"))
	}
	if s.villagers+s.archers+s.knights <= 0 {
		errs = append(errs, errors.New("at least one unit is required"))
	}
	if s.rounds <= 0 {
		errs = append(errs, errors.New("-rounds must be > 0"))
	}
	if len(s.script) == 0 {
		errs = append(errs, errors.New("-script is empty"))
	}
	return errors.Join(errs...)
}

type runStats struct {
	runIndex int
	seed     int64

	spawned   int
	steps     int
	failed    int
	survivors int

	firstHitStep   int
	firstDyingTick int
	firstKillTick  int

	hits       int
	dying      int
	toggles    int
	collected  int
	fadeTicks  int
	killed     map[string]struct{}
	scoreboard game.Scoreboard
	outcome    game.OutcomeReason
}

func main() {
	var (
		runs       int
		seedBase   int64
		seedStep   int64
		configPath string
		script     string
		logLevel   string
		copyReport bool
		s          setup
	)

	flag.IntVar(&runs, "runs", 5, "number of headless skirmishes")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&configPath, "config", "", "YAML config file (defaults when empty)")
	flag.IntVar(&s.villagers, "villagers", 4, "villagers spawned per run")
	flag.IntVar(&s.archers, "archers", 3, "archers spawned per run")
	flag.IntVar(&s.knights, "knights", 3, "knights spawned per run")
	flag.IntVar(&s.resources, "resources", 6, "resources spawned per run")
	flag.IntVar(&s.rounds, "rounds", 8, "times the script is replayed per run")
	flag.StringVar(&script, "script", defaultScript, "comma separated command list")
	flag.StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	flag.BoolVar(&copyReport, "copy", false, "copy the report to the clipboard")
	flag.Parse()

	logger, err := config.NewLogger(os.Stderr, logLevel)
	if err != nil {
		log.Fatal(err)
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal(err)
	}
	if s.script, err = control.ParseScript(script); err != nil {
		log.Fatal(err)
	}
	if runs <= 0 {
		log.Fatal("-runs must be > 0")
	}
	if err := s.validate(); err != nil {
		log.Fatal(err)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "=== Headless Skirmish Report ===\n")
	fmt.Fprintf(&buf, "runs=%d rounds=%d seed_base=%d seed_step=%d field=%dx%d\n",
		runs, s.rounds, seedBase, seedStep, cfg.Field.Width, cfg.Field.Height)
	fmt.Fprintf(&buf, "spawn: villagers=%d archers=%d knights=%d resources=%d\n",
		s.villagers, s.archers, s.knights, s.resources)
	fmt.Fprintf(&buf, "script: %s\n\n", scriptString(s.script))

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		rs := runSkirmish(i+1, seed, cfg, s, logger)
		all = append(all, rs)
		printRun(&buf, rs)
	}
	printAggregate(&buf, all)

	if _, err := buf.WriteTo(os.Stdout); err != nil {
		log.Fatal(err)
	}
	if copyReport {
		clip := control.SystemClipboard{}
		if !clip.Available() {
			logger.Warn("clipboard unavailable, report not copied")
			return
		}
		if err := clip.WriteAll(reportText(all)); err != nil {
			logger.Error("copy report", "err", err)
			os.Exit(1)
		}
	}
}

// runSkirmish spawns a seeded field and replays the script rounds times,
// stepping the fade ticker once per command.
func runSkirmish(runIndex int, seed int64, cfg config.Config, s setup, logger *slog.Logger) runStats {
	hs := game.NewHarness(
		game.WithHarnessSettings(cfg.Settings()),
		game.WithHarnessTraits(cfg.Traits()),
		game.WithSeed(seed),
		game.WithHarnessLogger(logger),
	)
	pad := cfg.Spawn.Padding
	for i := 0; i < s.villagers; i++ {
		hs.SpawnRandom(game.Villager, pad)
	}
	for i := 0; i < s.archers; i++ {
		hs.SpawnRandom(game.Archer, pad)
	}
	for i := 0; i < s.knights; i++ {
		hs.SpawnRandom(game.Knight, pad)
	}
	for i := 0; i < s.resources; i++ {
		hs.SpawnRandomResource(pad)
	}

	panel := control.NewPanel(hs.Arena,
		control.WithRand(rand.New(rand.NewSource(seed))), // #nosec G404 -- reproducible runs
		control.WithPadding(pad),
		control.WithLogger(logger),
	)

	rs := runStats{runIndex: runIndex, seed: seed, firstHitStep: -1}
	for r := 0; r < s.rounds; r++ {
		for _, cmd := range s.script {
			rs.steps++
			before := hs.Log.Count(game.CategoryAttack, game.KeyHit)
			if _, err := panel.Dispatch(cmd); err != nil {
				rs.failed++
			}
			if rs.firstHitStep < 0 && hs.Log.Count(game.CategoryAttack, game.KeyHit) > before {
				rs.firstHitStep = rs.steps
			}
			hs.Sched.Step()
		}
	}
	rs.fadeTicks = hs.RunFade(drainTicks)

	entries := hs.Log.Entries()
	rs.killed = map[string]struct{}{}
	for _, e := range entries {
		switch {
		case e.Category == game.CategoryKill && e.Key == game.KeyEliminated:
			rs.killed[e.Unit] = struct{}{}
		case e.Category == game.CategoryResource && e.Key == game.KeyCollected:
			rs.collected += int(e.NumVal)
		}
	}
	rs.spawned = hs.Log.Count(game.CategoryUnit, game.KeySpawned)
	rs.hits = hs.Log.Count(game.CategoryAttack, game.KeyHit)
	rs.dying = hs.Log.Count(game.CategoryUnit, game.KeyDying)
	rs.toggles = hs.Log.Count(game.CategoryMount, game.KeyToggle)
	rs.firstDyingTick = firstTick(entries, game.CategoryUnit, game.KeyDying)
	rs.firstKillTick = firstTick(entries, game.CategoryKill, game.KeyEliminated)
	rs.scoreboard = hs.Arena.Scoreboard()
	rs.survivors = rs.scoreboard.Units
	rs.outcome = game.DetermineOutcome(hs.Arena.Units(), rs.scoreboard)
	return rs
}

func firstTick(entries []game.Event, category, key string) int {
	for _, e := range entries {
		if e.Category == category && e.Key == key {
			return e.Tick
		}
	}
	return -1
}

func printRun(w io.Writer, rs runStats) {
	sb := rs.scoreboard
	fmt.Fprintf(w, "--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Fprintf(w, "outcome=%s (%s)\n", rs.outcome.Outcome, rs.outcome.Description)
	fmt.Fprintf(w, "phase_markers: first_hit_step=%d first_dying_tick=%d first_kill_tick=%d fade_drain=%d\n",
		rs.firstHitStep, rs.firstDyingTick, rs.firstKillTick, rs.fadeTicks)
	fmt.Fprintf(w, "event_totals: steps=%d failed=%d hits=%d dying=%d mount_toggles=%d\n",
		rs.steps, rs.failed, rs.hits, rs.dying, rs.toggles)
	fmt.Fprintf(w, "kills: villager=%d archer=%d knight=%d total=%d\n",
		sb.KillsOf(game.Villager), sb.KillsOf(game.Archer), sb.KillsOf(game.Knight), sb.TotalKills)
	fmt.Fprintf(w, "stockpile: food=%d gold=%d wood=%d collected=%d\n",
		sb.StockOf(game.Food), sb.StockOf(game.Gold), sb.StockOf(game.Wood), rs.collected)
	fmt.Fprintf(w, "survivors: villager=%d archer=%d knight=%d (spawned=%d)\n",
		rs.outcome.SurvivorsOf(game.Villager), rs.outcome.SurvivorsOf(game.Archer),
		rs.outcome.SurvivorsOf(game.Knight), rs.spawned)
	fmt.Fprintf(w, "eliminated_labels: %s\n\n", joinSet(rs.killed))
}

func printAggregate(w io.Writer, all []runStats) {
	var (
		totalKills   [3]int
		totalStock   [3]int
		totalHits    int
		totalFailed  int
		totalSurvive int
		hitSteps     []int
		killTicks    []int
		outcomes     = map[string]int{}
	)
	for _, rs := range all {
		for i, k := range game.AllKinds {
			totalKills[i] += rs.scoreboard.KillsOf(k)
		}
		for i, k := range game.AllResourceKinds {
			totalStock[i] += rs.scoreboard.StockOf(k)
		}
		totalHits += rs.hits
		totalFailed += rs.failed
		totalSurvive += rs.survivors
		if rs.firstHitStep >= 0 {
			hitSteps = append(hitSteps, rs.firstHitStep)
		}
		if rs.firstKillTick >= 0 {
			killTicks = append(killTicks, rs.firstKillTick)
		}
		outcomes[rs.outcome.Outcome.String()]++
	}

	n := len(all)
	fmt.Fprintln(w, "=== Aggregate ===")
	fmt.Fprintf(w, "runs=%d\n", n)
	fmt.Fprintf(w, "avg_kills_per_run: villager=%.1f archer=%.1f knight=%.1f\n",
		avg(totalKills[0], n), avg(totalKills[1], n), avg(totalKills[2], n))
	fmt.Fprintf(w, "avg_stockpile_per_run: food=%.1f gold=%.1f wood=%.1f\n",
		avg(totalStock[0], n), avg(totalStock[1], n), avg(totalStock[2], n))
	fmt.Fprintf(w, "avg_events_per_run: hits=%.1f failed_commands=%.1f survivors=%.1f\n",
		avg(totalHits, n), avg(totalFailed, n), avg(totalSurvive, n))
	fmt.Fprintf(w, "phase_marker_avg: first_hit_step=%s first_kill_tick=%s\n",
		avgString(hitSteps), avgString(killTicks))
	fmt.Fprintf(w, "outcomes: %s\n", formatCounts(outcomes))
}

// reportText is the compact per-run summary placed on the clipboard.
func reportText(all []runStats) string {
	var b strings.Builder
	for _, rs := range all {
		fmt.Fprintf(&b, "run %d seed=%d %s | %s\n",
			rs.runIndex, rs.seed, rs.outcome.Outcome, rs.scoreboard.Compact())
	}
	return b.String()
}

func scriptString(cmds []control.Command) string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.String()
	}
	return strings.Join(names, ",")
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

func formatCounts(counts map[string]int) string {
	if len(counts) == 0 {
		return "none"
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%d", k, counts[k])
	}
	return strings.Join(parts, " ")
}

func joinSet(s map[string]struct{}) string {
	if len(s) == 0 {
		return "none"
	}
	labels := make([]string, 0, len(s))
	for k := range s {
		labels = append(labels, k)
	}
	sort.Strings(labels)
	return strings.Join(labels, ",")
}
