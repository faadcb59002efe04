package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/storekeeper/internal/analytics"
	"github.com/dmitrijs2005/storekeeper/internal/commands"
	"github.com/dmitrijs2005/storekeeper/internal/common"
	"github.com/dmitrijs2005/storekeeper/internal/config"
	"github.com/dmitrijs2005/storekeeper/internal/logging"
	"github.com/dmitrijs2005/storekeeper/internal/models"
	"github.com/dmitrijs2005/storekeeper/internal/timex"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type fakeAuth struct {
	user, pass string
	calls      int
}

func (f *fakeAuth) Verify(_ context.Context, username string, password []byte) error {
	f.calls++
	if username == f.user && string(password) == f.pass {
		return nil
	}
	return common.ErrorUnauthorized
}

type fakeExec struct {
	calls   []commands.Command
	results map[commands.Kind]commands.Result
	errs    map[commands.Kind]error
}

func (f *fakeExec) Execute(_ context.Context, cmd commands.Command) (commands.Result, error) {
	f.calls = append(f.calls, cmd)
	if err := f.errs[cmd.Kind]; err != nil {
		return commands.Result{}, err
	}
	if r, ok := f.results[cmd.Kind]; ok {
		return r, nil
	}
	return commands.Result{Kind: cmd.Kind}, nil
}

func pipedInput(t *testing.T) {
	t.Helper()
	old := isTerminal
	isTerminal = func(int) bool { return false }
	t.Cleanup(func() { isTerminal = old })
}

func newTestApp(t *testing.T, input string, exec executor) (*App, *bytes.Buffer) {
	t.Helper()
	pipedInput(t)
	var out bytes.Buffer
	return &App{
		log:         logging.Discard(),
		authService: &fakeAuth{user: "admin", pass: "secret"},
		exec:        exec,
		reader:      bufio.NewReader(strings.NewReader(input)),
		out:         &out,
		printer:     message.NewPrinter(language.English),
	}, &out
}

func TestRun_LoginRetriesUntilAccepted(t *testing.T) {
	exec := &fakeExec{}
	app, out := newTestApp(t, "admin\nwrong\nadmin\nsecret\n9\n", exec)

	require.NoError(t, app.Run(context.Background()))

	s := out.String()
	assert.Equal(t, 1, strings.Count(s, "Invalid credentials. Please try again."))
	assert.Contains(t, s, "Login successful!")
	assert.Contains(t, s, "Logged out.")
	assert.Empty(t, exec.calls)
	assert.False(t, app.isLoggedIn())
}

func TestRun_EOFDuringLoginQuits(t *testing.T) {
	app, out := newTestApp(t, "admin\n", &fakeExec{})

	require.NoError(t, app.Run(context.Background()))
	assert.NotContains(t, out.String(), "Login successful!")
}

func TestMenuLoop_InvalidChoiceReprompts(t *testing.T) {
	exec := &fakeExec{}
	app, out := newTestApp(t, "6\n0\nabc\n\n9\n", exec)

	require.NoError(t, app.menuLoop(context.Background()))
	assert.Equal(t, 4, strings.Count(out.String(), "Invalid choice. Please enter a number between 1 and 9."))
	assert.Equal(t, 5, strings.Count(out.String(), "===== Main Menu ====="))
	assert.Empty(t, exec.calls)
}

func TestMenuLoop_BuildsCommands(t *testing.T) {
	exec := &fakeExec{}
	input := strings.Join([]string{
		"1", "B3", "Beach", "Galle",
		"2", "B1", "P1", " 150 ",
		"3", "B1",
		"4", "P1",
		"5",
		"7",
		"8",
		"9",
	}, "\n") + "\n"
	app, _ := newTestApp(t, input, exec)
	exec.results = map[commands.Kind]commands.Result{
		commands.KindAddBranch:               {Kind: commands.KindAddBranch, Branch: &models.Branch{ID: "B3", Name: "Beach"}},
		commands.KindMonthlySalesByBranch:    {Kind: commands.KindMonthlySalesByBranch, BranchSales: &analytics.BranchSales{BranchID: "B1", Amounts: []int64{150}}},
		commands.KindPriceStatistics:         {Kind: commands.KindPriceStatistics, PriceStats: &analytics.PriceStats{ProductID: "P1", Count: 1}},
		commands.KindWeeklySalesNetwork:      {Kind: commands.KindWeeklySalesNetwork, Weekly: &analytics.WeeklySummary{}},
		commands.KindTotalSalesAmount:        {Kind: commands.KindTotalSalesAmount, Total: new(int64)},
		commands.KindMonthlySalesAllBranches: {Kind: commands.KindMonthlySalesAllBranches, Network: &analytics.NetworkTotals{}},
	}

	require.NoError(t, app.menuLoop(context.Background()))

	want := []commands.Command{
		commands.AddBranch(models.Branch{ID: "B3", Name: "Beach", Location: "Galle"}),
		commands.AddSale(commands.SaleInput{BranchID: "B1", ProductID: "P1", Amount: 150}),
		commands.MonthlySalesByBranch("B1"),
		commands.PriceStatistics("P1"),
		commands.WeeklySalesNetwork(),
		commands.TotalSalesAmount(),
		commands.MonthlySalesAllBranches(),
	}
	assert.Equal(t, want, exec.calls)
}

func TestMenuLoop_InvalidAmountIsNotExecuted(t *testing.T) {
	exec := &fakeExec{}
	app, out := newTestApp(t, "2\nB1\nP1\nten\n9\n", exec)

	require.NoError(t, app.menuLoop(context.Background()))
	assert.Empty(t, exec.calls)
	assert.Contains(t, out.String(), "Invalid amount")
}

func TestMenuLoop_ErrorsAreReportedAndLoopContinues(t *testing.T) {
	exec := &fakeExec{errs: map[commands.Kind]error{
		commands.KindMonthlySalesByBranch: common.ErrNoDataForBranch,
		commands.KindPriceStatistics:      common.ErrNoDataForProduct,
		commands.KindAddSale:              common.ErrInvalidAmount,
		commands.KindTotalSalesAmount:     &models.RowError{Line: 3, Field: "Amount Sold", Err: errors.New("bad digit")},
	}}
	app, out := newTestApp(t, "3\nB9\n4\nP9\n2\nB1\nP1\n-5\n7\n9\n", exec)

	require.NoError(t, app.menuLoop(context.Background()))

	s := out.String()
	assert.Contains(t, s, "No sales data found for Branch ID B9.")
	assert.Contains(t, s, "No sales data found for Product ID P9.")
	assert.Contains(t, s, "Invalid amount")
	assert.Contains(t, s, "Data error:")
	assert.Contains(t, s, "Logged out.")
	assert.Len(t, exec.calls, 4)
}

func TestMenuLoop_EOFLogsOut(t *testing.T) {
	app, out := newTestApp(t, "7\n", &fakeExec{results: map[commands.Kind]commands.Result{
		commands.KindTotalSalesAmount: {Kind: commands.KindTotalSalesAmount, Total: new(int64)},
	}})
	app.userName = "admin"

	require.NoError(t, app.menuLoop(context.Background()))
	assert.Contains(t, out.String(), "Total Sales Amount: 0 LKR")
	assert.Contains(t, out.String(), "Logged out.")
	assert.False(t, app.isLoggedIn())
}

func TestMenuLoop_EOFInsideFormLogsOut(t *testing.T) {
	exec := &fakeExec{}
	app, out := newTestApp(t, "1\nB1\n", exec)

	require.NoError(t, app.menuLoop(context.Background()))
	assert.Empty(t, exec.calls)
	assert.Contains(t, out.String(), "Logged out.")
}

func TestRender_Amounts(t *testing.T) {
	app, out := newTestApp(t, "", &fakeExec{})

	total := int64(1234567)
	app.render(commands.Result{Kind: commands.KindTotalSalesAmount, Total: &total})
	app.render(commands.Result{Kind: commands.KindPriceStatistics, PriceStats: &analytics.PriceStats{
		ProductID: "P1", Count: 3, Min: 50, Max: 2000,
		Mean:   decimal.NewFromFloat(683.333333),
		Median: decimal.NewFromInt(1000),
		Q1:     decimal.NewFromInt(525),
		Q3:     decimal.NewFromInt(1500),
	}})

	s := out.String()
	assert.Contains(t, s, "Total Sales Amount: 1,234,567 LKR")
	assert.Contains(t, s, "Average Price: 683.33 LKR")
	assert.Contains(t, s, "Maximum Price: 2,000 LKR")
	assert.Contains(t, s, "Median Price: 1,000.00 LKR")
	assert.Contains(t, s, "Spread: 50 |-- [525.00 | 1,000.00 | 1,500.00] --| 2,000")
}

func TestRender_Weekly(t *testing.T) {
	app, out := newTestApp(t, "", &fakeExec{})
	start, _ := timex.ParseDate("2024-01-01")

	app.render(commands.Result{Kind: commands.KindWeeklySalesNetwork, Weekly: &analytics.WeeklySummary{
		Start: start, End: start.AddDate(0, 0, 6), Count: 2, Total: 300, Mean: decimal.NewFromInt(150),
	}})

	s := out.String()
	assert.Contains(t, s, "Week: 2024-01-01 to 2024-01-07 (2 sales)")
	assert.Contains(t, s, "Total Sales for the Week: 300 LKR")
	assert.Contains(t, s, "Average Sale Amount: 150.00 LKR")
}

func TestRender_BranchHistogram(t *testing.T) {
	app, out := newTestApp(t, "", &fakeExec{})

	app.render(commands.Result{Kind: commands.KindMonthlySalesByBranch, BranchSales: &analytics.BranchSales{
		BranchID: "B1", Amounts: []int64{100, 100, 200},
	}})

	s := out.String()
	assert.Contains(t, s, "Monthly Sales Analysis - Branch B1")
	assert.Contains(t, s, "Sales: 3, Total: 400 LKR")
	assert.Equal(t, 10, strings.Count(s, " | "))
	assert.Contains(t, s, strings.Repeat("#", barWidth)+" 2")
	assert.Contains(t, s, strings.Repeat("#", barWidth/2)+" ")
}

func TestRender_NetworkWithOrphans(t *testing.T) {
	app, out := newTestApp(t, "", &fakeExec{})

	app.render(commands.Result{Kind: commands.KindMonthlySalesAllBranches, Network: &analytics.NetworkTotals{
		Totals:  []analytics.BranchTotal{{BranchID: "B1", Total: 300}, {BranchID: "B22", Total: 0}},
		Orphans: []analytics.BranchTotal{{BranchID: "B9", Total: 1500}},
	}})

	s := out.String()
	assert.Contains(t, s, "B1  | "+strings.Repeat("#", barWidth))
	assert.Contains(t, s, "300 LKR")
	assert.Contains(t, s, "B22 | ")
	assert.Contains(t, s, "Warning: sales reference unknown branches: B9 (1,500 LKR)")
}

func TestBar(t *testing.T) {
	assert.Equal(t, "", bar(0, 10))
	assert.Equal(t, "", bar(5, 0))
	assert.Equal(t, "#", bar(1, 1000))
	assert.Equal(t, strings.Repeat("#", barWidth), bar(10, 10))
	assert.Equal(t, strings.Repeat("#", barWidth/2), bar(5, 10))

	// totals near the int64 limit must not wrap
	assert.Equal(t, strings.Repeat("#", barWidth), bar(math.MaxInt64/2, math.MaxInt64/2))
	assert.Equal(t, strings.Repeat("#", barWidth/2), bar(math.MaxInt64/4, math.MaxInt64/2))
}

func TestNewApp_EndToEndOverCSV(t *testing.T) {
	pipedInput(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "users.csv"), []byte("Username,Password\nadmin,secret\n"), 0o600))

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DataDir = dir

	ctx := context.Background()
	app, err := NewApp(ctx, cfg, logging.Discard())
	require.NoError(t, err)

	var out bytes.Buffer
	app.out = &out
	app.reader = bufio.NewReader(strings.NewReader(strings.Join([]string{
		"admin", "secret",
		"1", "B1", "Main", "Colombo",
		"2", "B1", "P1", "100",
		"2", "B9", "P1", "50",
		"7",
		"8",
		"9",
	}, "\n") + "\n"))

	require.NoError(t, app.Run(ctx))

	s := out.String()
	assert.Contains(t, s, "Login successful!")
	assert.Contains(t, s, "Branch Main added successfully.")
	assert.Contains(t, s, "Total Sales Amount: 150 LKR")
	assert.Contains(t, s, "Warning: sales reference unknown branches: B9 (50 LKR)")

	for _, name := range []string{"branches.csv", "products.csv", "sales.csv"} {
		_, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
	}
	data, err := os.ReadFile(filepath.Join(dir, "sales.csv"))
	require.NoError(t, err)
	today := timex.FormatDate(time.Now())
	assert.Equal(t, "Branch ID,Product ID,Amount Sold,Date\nB1,P1,100,"+today+"\nB9,P1,50,"+today+"\n", string(data))
}
