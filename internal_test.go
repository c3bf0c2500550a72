package gridview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPagerSummary(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		in   pagerInput
		want string
	}{
		"mid page":    {in: pagerInput{total: 57, offset: 20, pageLength: 20}, want: "21-40 / 57"},
		"first page":  {in: pagerInput{total: 57, offset: 0, pageLength: 20}, want: "1-20 / 57"},
		"last page":   {in: pagerInput{total: 57, offset: 40, pageLength: 17}, want: "41-57 / 57"},
		"single row":  {in: pagerInput{total: 1, offset: 0, pageLength: 1}, want: "1-1 / 1"},
		"empty":       {in: pagerInput{}, want: "0"},
		"showing all": {in: pagerInput{total: 57, offset: 0, pageLength: 57, showingAll: true}, want: "1-57 / 57"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.in.summary())
		})
	}
}

func TestMergeAttrs(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		base, override, want Attrs
	}{
		"both nil": {},
		"class tokens accumulate": {
			base:     Attrs{"class": "a"},
			override: Attrs{"class": "b"},
			want:     Attrs{"class": "a b"},
		},
		"other keys overwrite": {
			base:     Attrs{"title": "x", "class": "a"},
			override: Attrs{"title": "y"},
			want:     Attrs{"title": "y", "class": "a"},
		},
		"override class onto empty base": {
			override: Attrs{"class": "b"},
			want:     Attrs{"class": "b"},
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, mergeAttrs(tt.base, tt.override))
		})
	}
}

func TestAttrString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "", attrString(nil))
	// Keys render in sorted order, values escaped.
	got := attrString(Attrs{"title": `a"b`, "class": "x"})
	assert.Equal(t, ` class="x" title="a&#34;b"`, got)
}

func TestStringify(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "&lt;b&gt;", stringify("<b>"))
	assert.Equal(t, "<b>", stringify(HTML("<b>")))
	assert.Equal(t, "", stringify(nil))
	assert.Equal(t, "42", stringify(42))
}

func TestSortDirToggle(t *testing.T) {
	t.Parallel()
	assert.Equal(t, SortDesc, SortAsc.Toggle())
	assert.Equal(t, SortAsc, SortDesc.Toggle())
	assert.Equal(t, SortAsc, SortDir("bogus").Toggle())
}

func TestStateParams(t *testing.T) {
	t.Parallel()
	st := &State[int]{
		Name:       "people",
		Offset:     40,
		ActiveSort: &Sort{Attribute: "age", Dir: SortDesc},
		Filters:    map[string]string{"name": "Ali", "age": ""},
		ShowingAll: true,
	}
	v := st.Params()
	assert.Equal(t, "age", v.Get("people[sort]"))
	assert.Equal(t, "desc", v.Get("people[dir]"))
	assert.Equal(t, "Ali", v.Get("people[filter][name]"))
	assert.Equal(t, "40", v.Get("people[start]"))
	assert.Equal(t, "1", v.Get("people[all]"))
	// Empty filter values stay out of the blob.
	assert.False(t, v.Has("people[filter][age]"))
}

func TestBufferDetach(t *testing.T) {
	t.Parallel()
	var b Buffer
	b.WriteString("<table>")
	assert.False(t, b.Stubborn())

	b.Detach("k", "<input>")
	assert.True(t, b.Stubborn())

	frag, err := b.Fragment("k")
	assert.NoError(t, err)
	assert.Equal(t, "<input>", frag)

	_, err = b.Fragment("missing")
	assert.ErrorIs(t, err, ErrDetachedFilterNotFound)

	// Detached fragments never leak into the main text.
	assert.Equal(t, "<table>", b.String())
}
