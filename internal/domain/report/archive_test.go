package report

import (
	"encoding/json"
	"testing"

	"github.com/Velocidex/ordereddict"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseArchive(t *testing.T, data string) interface{} {
	t.Helper()
	wrapper := ordereddict.NewDict()
	require.NoError(t, json.Unmarshal([]byte(`{"v":`+data+`}`), wrapper))
	value, _ := wrapper.Get("v")
	return value
}

func TestWalkArchiveNotAList(t *testing.T) {
	for _, v := range []interface{}{nil, "text", 42.0, parseArchive(t, `{"k":1}`)} {
		nodes := WalkArchive(v, 0)
		require.Len(t, nodes, 1)
		assert.True(t, nodes[0].Notice)
		assert.Equal(t, NoticeNotArchive, nodes[0].Label)
	}
}

func TestWalkArchiveEmptyList(t *testing.T) {
	nodes := WalkArchive(parseArchive(t, `[]`), 0)
	require.Len(t, nodes, 1)
	assert.True(t, nodes[0].Notice)
	assert.Equal(t, NoticeEmpty, nodes[0].Label)
}

func TestWalkArchiveRootAndChild(t *testing.T) {
	nodes := WalkArchive(parseArchive(t, `[
		{"Имя":"root","Это папка":true,"Вложенное":[{"Имя":"child.txt","size":10}]}
	]`), 0)
	require.Len(t, nodes, 2)

	root := nodes[0]
	assert.Equal(t, "root", root.Name)
	assert.Equal(t, 0, root.Depth)
	assert.True(t, root.Dir)
	assert.True(t, root.Expandable)
	assert.Equal(t, MarkerDir, root.Marker)
	assert.Equal(t, "📁 root", root.Label)

	child := nodes[1]
	assert.Equal(t, "child.txt", child.Name)
	assert.Equal(t, 1, child.Depth)
	assert.False(t, child.Dir)
	assert.False(t, child.Expandable)
	assert.Equal(t, "10", child.Size)
	assert.Equal(t, "📄 child.txt — 10", child.Label)
}

func TestWalkArchivePreOrder(t *testing.T) {
	nodes := WalkArchive(parseArchive(t, `[
		{"Имя":"A","Это папка":true,"Вложенное":[
			{"Имя":"A1"},
			{"Имя":"A2","Это папка":true,"Вложенное":[{"Имя":"A2a"}]}
		]},
		{"Имя":"B"}
	]`), 0)

	var names []string
	var depths []int
	for _, n := range nodes {
		names = append(names, n.Name)
		depths = append(depths, n.Depth)
	}
	assert.Equal(t, []string{"A", "A1", "A2", "A2a", "B"}, names)
	assert.Equal(t, []int{0, 1, 1, 2, 0}, depths)
}

func TestWalkArchiveDepthFidelity(t *testing.T) {
	nodes := WalkArchive(parseArchive(t, `[
		{"Имя":"d0","Вложенное":[{"Имя":"d1","Вложенное":[{"Имя":"d2","Вложенное":[
			{"Имя":"d3","Вложенное":[{"Имя":"d4","Вложенное":[{"Имя":"d5"}]}]}
		]}]}]}
	]`), 0)
	require.Len(t, nodes, 6)
	assert.Equal(t, 5, nodes[5].Depth)
	assert.Equal(t, "d5", nodes[5].Name)
}

func TestWalkArchiveDepthCap(t *testing.T) {
	nodes := WalkArchive(parseArchive(t, `[
		{"Имя":"d0","Вложенное":[{"Имя":"d1","Вложенное":[{"Имя":"d2"}]}]}
	]`), 1)
	require.Len(t, nodes, 3)
	assert.Equal(t, "d0", nodes[0].Name)
	assert.Equal(t, "d1", nodes[1].Name)
	assert.True(t, nodes[1].Expandable)
	assert.True(t, nodes[2].Notice)
	assert.Equal(t, NoticeTruncated, nodes[2].Label)
}

func TestWalkArchiveNameFallbacks(t *testing.T) {
	nodes := WalkArchive(parseArchive(t, `[
		{"Имя в архиве":"inner","Имя":"outer"},
		{"Имя в архиве":"","Имя":"outer"},
		{"size":1}
	]`), 0)
	require.Len(t, nodes, 3)
	assert.Equal(t, "inner", nodes[0].Name)
	assert.Equal(t, "outer", nodes[1].Name)
	assert.Equal(t, "<unknown>", nodes[2].Name)
}

func TestWalkArchiveMeta(t *testing.T) {
	nodes := WalkArchive(parseArchive(t, `[
		{"Имя в архиве":"f","Имя":"x","size":3,"MD5":"abc","Вложенное":[]}
	]`), 0)
	require.Len(t, nodes, 1)
	meta := nodes[0].Meta
	require.NotNil(t, meta)
	assert.Equal(t, []string{"size", "MD5"}, meta.Keys())

	// Name variants and the child list never leak into metadata.
	_, pres := meta.Get(FieldNested)
	assert.False(t, pres)
}

func TestWalkArchiveZeroSizeStillShown(t *testing.T) {
	nodes := WalkArchive(parseArchive(t, `[{"Имя":"empty.bin","size":0}]`), 0)
	require.Len(t, nodes, 1)
	assert.Equal(t, "0", nodes[0].Size)
	assert.Equal(t, "📄 empty.bin — 0", nodes[0].Label)
}

func TestWalkArchiveNullSizeHidden(t *testing.T) {
	nodes := WalkArchive(parseArchive(t, `[{"Имя":"f","size":null}]`), 0)
	require.Len(t, nodes, 1)
	assert.Equal(t, "", nodes[0].Size)
	assert.Equal(t, "📄 f", nodes[0].Label)
}

func TestWalkArchiveSkipsMalformedMembers(t *testing.T) {
	nodes := WalkArchive(parseArchive(t, `[{"Имя":"ok"},42,"junk"]`), 0)
	require.Len(t, nodes, 1)
	assert.Equal(t, "ok", nodes[0].Name)

	// All-junk listings still render something.
	nodes = WalkArchive(parseArchive(t, `[42]`), 0)
	require.Len(t, nodes, 1)
	assert.True(t, nodes[0].Notice)
}

func TestWalkArchiveFolderFlagTruthiness(t *testing.T) {
	nodes := WalkArchive(parseArchive(t, `[
		{"Имя":"a","Это папка":true},
		{"Имя":"b","Это папка":false},
		{"Имя":"c","Это папка":null},
		{"Имя":"d"}
	]`), 0)
	require.Len(t, nodes, 4)
	assert.True(t, nodes[0].Dir)
	assert.False(t, nodes[1].Dir)
	assert.False(t, nodes[2].Dir)
	assert.False(t, nodes[3].Dir)
}
