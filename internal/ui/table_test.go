package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/lazyconn/internal/inventory"
)

func TestNewTable(t *testing.T) {
	columns := []TableColumn{
		{Title: "Name", Width: 20},
		{Title: "Status", Width: 10},
	}
	rows := []table.Row{
		{"item1", "ok"},
		{"item2", "error"},
	}

	view := NewTable(columns, rows).View()
	assert.Contains(t, view, "Name")
	assert.Contains(t, view, "Status")
	assert.Contains(t, view, "item1")
	assert.Contains(t, view, "item2")
}

func TestRenderSimpleTable_EmptyRows(t *testing.T) {
	assert.Equal(t, "", RenderSimpleTable([]TableColumn{{Title: "Name", Width: 20}}, nil))
}

func sampleInstances() []inventory.Instance {
	return []inventory.Instance{
		{Index: 1, ID: "i-0aaa", Name: "web-1", Type: "(Linux/UNIX) t3.micro", Address: "203.0.113.10", Key: "prod.pem"},
		{Index: 2, ID: "i-0bbb", Name: "N/A", Type: "(Windows) m5.large", Address: "203.0.113.11", Key: "win.pem"},
		{Index: 3, ID: "i-0ccc", Name: "a-much-longer-instance-name", Type: "(Linux/UNIX) c7g.4xlarge", Address: "198.51.100.200", Key: "build.pem"},
	}
}

func TestRenderInstanceTable(t *testing.T) {
	out := RenderInstanceTable(sampleInstances())

	for _, h := range InstanceHeaders {
		assert.Contains(t, out, h)
	}
	for _, inst := range sampleInstances() {
		for _, cell := range inst.Row() {
			assert.Contains(t, out, cell, "cells are never truncated")
		}
	}
}

func TestRenderInstanceTable_PreservesOrder(t *testing.T) {
	out := RenderInstanceTable(sampleInstances())

	first := strings.Index(out, "i-0aaa")
	second := strings.Index(out, "i-0bbb")
	third := strings.Index(out, "i-0ccc")
	require.True(t, first >= 0 && second >= 0 && third >= 0)
	assert.Less(t, first, second)
	assert.Less(t, second, third)
}

func TestRenderInstanceTable_Empty(t *testing.T) {
	assert.Equal(t, "", RenderInstanceTable(nil))
}

func TestFitColumns(t *testing.T) {
	cols := fitColumns([]string{"#", "Name"}, [][]string{
		{"1", "ab"},
		{"10", "abcdef"},
	})

	assert.Equal(t, []TableColumn{
		{Title: "#", Width: 2},
		{Title: "Name", Width: 6},
	}, cols)
}
