package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTorinoCode(t *testing.T) {
	code, err := TorinoCode("Olympia", 0)
	require.NoError(t, err)
	require.Equal(t, "Orzo-0001", code)

	code, err = TorinoCode("Daltile", 11)
	require.NoError(t, err)
	require.Equal(t, "Vetro-0012", code)

	// The running number keeps four digits past 9999
	code, err = TorinoCode("Midgley West", 9999)
	require.NoError(t, err)
	require.Equal(t, "Milano-10000", code)
}

func TestTorinoCodeUsesEverySupplierPrefix(t *testing.T) {
	for supplier, prefix := range SupplierCodes {
		code, err := TorinoCode(supplier, 0)
		require.NoError(t, err)
		require.Equal(t, prefix+"-0001", code)
	}
}

func TestTorinoCodeRejectsUnknownSupplier(t *testing.T) {
	_, err := TorinoCode("Home Depot", 0)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown supplier")
}

func TestTileDefaultsColorGroup(t *testing.T) {
	tile := Tile{Name: "Carrara", Supplier: "Olympia"}.withDefaults()
	require.Equal(t, "White", tile.ColorGroup)

	tile = Tile{Name: "Nero", Supplier: "Olympia", ColorGroup: "Black"}.withDefaults()
	require.Equal(t, "Black", tile.ColorGroup)
}
