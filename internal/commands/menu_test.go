package commands

import (
	"testing"

	"github.com/dmitrijs2005/storekeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenu_KeysOneToNineWithoutSix(t *testing.T) {
	var keys []string
	for _, e := range Menu {
		keys = append(keys, e.Key)
	}
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "7", "8", "9"}, keys)

	_, ok := Lookup("6")
	assert.False(t, ok)
	_, ok = Lookup("10")
	assert.False(t, ok)
}

func TestLookup_TrimsInput(t *testing.T) {
	e, ok := Lookup(" 3\n")
	require.True(t, ok)
	assert.Equal(t, KindMonthlySalesByBranch, e.Kind)
	assert.Equal(t, "Enter Branch ID", e.Prompt())
}

func TestMenuEntry_Build(t *testing.T) {
	tests := []struct {
		key  string
		arg  string
		want Command
	}{
		{key: "3", arg: "B1", want: MonthlySalesByBranch("B1")},
		{key: "4", arg: "P1", want: PriceStatistics("P1")},
		{key: "5", want: WeeklySalesNetwork()},
		{key: "7", want: TotalSalesAmount()},
		{key: "8", want: MonthlySalesAllBranches()},
		{key: "9", want: Logout()},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			e, ok := Lookup(tt.key)
			require.True(t, ok)
			got, err := e.Build(tt.arg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMenuEntry_BuildAcceptsEmptyID(t *testing.T) {
	e, ok := Lookup("3")
	require.True(t, ok)
	got, err := e.Build("")
	require.NoError(t, err)
	assert.Equal(t, MonthlySalesByBranch(""), got)

	e, ok = Lookup("4")
	require.True(t, ok)
	got, err = e.Build("")
	require.NoError(t, err)
	assert.Equal(t, PriceStatistics(""), got)
}

func TestMenuEntry_BuildFormEntriesFails(t *testing.T) {
	for _, key := range []string{"1", "2"} {
		e, ok := Lookup(key)
		require.True(t, ok)
		_, err := e.Build("")
		require.ErrorIs(t, err, common.ErrUnknownCommand)
	}
}

func TestKind_StringAndMutating(t *testing.T) {
	assert.Equal(t, "price_statistics", KindPriceStatistics.String())
	assert.Equal(t, "kind(99)", Kind(99).String())
	assert.True(t, KindAddSale.Mutating())
	assert.False(t, KindTotalSalesAmount.Mutating())
}
