package gridview_test

import (
	"testing"

	"github.com/bjaus/gridview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewColumnsValidation(t *testing.T) {
	t.Parallel()
	cell := func(p person) any { return p.Name }
	tests := map[string]struct {
		col     gridview.Column[person]
		wantErr require.ErrorAssertionFunc
	}{
		"valid bound column": {
			col:     gridview.Column[person]{Label: "Name", Attribute: "name", Sortable: true, Cell: cell},
			wantErr: require.NoError,
		},
		"valid unlabeled action column": {
			col:     gridview.Column[person]{Cell: cell, Mode: gridview.ModeTable},
			wantErr: require.NoError,
		},
		"sortable without attribute": {
			col:     gridview.Column[person]{Label: "Name", Sortable: true, Cell: cell},
			wantErr: require.Error,
		},
		"sortable excluded from table": {
			col:     gridview.Column[person]{Label: "Name", Attribute: "name", Sortable: true, Cell: cell, Mode: gridview.ModeExport},
			wantErr: require.Error,
		},
		"missing cell function": {
			col:     gridview.Column[person]{Label: "Name"},
			wantErr: require.Error,
		},
		"detach key without filter": {
			col:     gridview.Column[person]{Label: "Name", Cell: cell, DetachKey: "sidebar"},
			wantErr: require.Error,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := gridview.NewColumns(tt.col)
			tt.wantErr(t, err)
			if err != nil {
				assert.ErrorIs(t, err, gridview.ErrInvalidColumn)
			}
		})
	}
}

func TestColumnsForMode(t *testing.T) {
	t.Parallel()
	cell := func(p person) any { return p.Name }
	cols, err := gridview.NewColumns(
		gridview.Column[person]{Label: "Name", Cell: cell},
		gridview.Column[person]{Label: "Internal", Cell: cell, Mode: gridview.ModeExport},
		gridview.Column[person]{Label: "Actions", Cell: cell, Mode: gridview.ModeTable},
	)
	require.NoError(t, err)

	assert.Equal(t, 2, cols.Count(gridview.ModeTable))
	assert.Equal(t, 2, cols.Count(gridview.ModeExport))

	var tableLabels []string
	for c := range cols.ForMode(gridview.ModeTable) {
		tableLabels = append(tableLabels, c.Label)
	}
	assert.Equal(t, []string{"Name", "Actions"}, tableLabels)

	// The sequence is restartable.
	n := 0
	for range cols.ForMode(gridview.ModeTable) {
		n++
	}
	assert.Equal(t, 2, n)

	last, ok := cols.LastApplicable(gridview.ModeExport)
	require.True(t, ok)
	assert.Equal(t, "Internal", last.Label)
}

func TestColumnsAnyFilter(t *testing.T) {
	t.Parallel()
	cell := func(p person) any { return p.Name }
	tests := map[string]struct {
		cols []gridview.Column[person]
		want bool
	}{
		"no filters": {
			cols: []gridview.Column[person]{{Label: "Name", Cell: cell}},
			want: false,
		},
		"one filter": {
			cols: []gridview.Column[person]{
				{Label: "Name", Cell: cell},
				{Label: "Age", Attribute: "age", Cell: cell, Filter: textInput},
			},
			want: true,
		},
		"filter outside mode": {
			cols: []gridview.Column[person]{
				{Label: "Age", Attribute: "age", Cell: cell, Filter: textInput, Mode: gridview.ModeExport},
			},
			want: false,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			cols, err := gridview.NewColumns(tt.cols...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cols.AnyFilter(gridview.ModeTable))
		})
	}
}

func TestCanFoldControls(t *testing.T) {
	t.Parallel()
	cell := func(p person) any { return p.Name }
	tests := map[string]struct {
		cols []gridview.Column[person]
		want bool
	}{
		"trailing unbound column": {
			cols: []gridview.Column[person]{
				{Label: "Name", Attribute: "name", Cell: cell},
				{Cell: cell, Mode: gridview.ModeTable},
			},
			want: true,
		},
		// A bound column never hosts the control icons, even without a
		// filter widget.
		"trailing bound column": {
			cols: []gridview.Column[person]{
				{Cell: cell, Mode: gridview.ModeTable},
				{Label: "Name", Attribute: "name", Cell: cell},
			},
			want: false,
		},
		"trailing unbound in export only": {
			cols: []gridview.Column[person]{
				{Label: "Name", Attribute: "name", Cell: cell},
				{Label: "Raw", Cell: cell, Mode: gridview.ModeExport},
			},
			want: false,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			cols, err := gridview.NewColumns(tt.cols...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cols.CanFoldControls())
		})
	}
}
