package lsp

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"testing"

	"github.com/leapstack-labs/paws/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// session scripts client messages and decodes the server's replies.
type session struct {
	t     *testing.T
	input bytes.Buffer
	id    int
}

func (s *session) request(method string, params any) int {
	s.id++
	s.write(map[string]any{"jsonrpc": "2.0", "id": s.id, "method": method, "params": params})
	return s.id
}

func (s *session) notify(method string, params any) {
	s.write(map[string]any{"jsonrpc": "2.0", "method": method, "params": params})
}

func (s *session) write(msg map[string]any) {
	body, err := json.Marshal(msg)
	require.NoError(s.t, err)
	fmt.Fprintf(&s.input, "Content-Length: %d\r\n\r\n%s", len(body), body)
}

// run feeds the scripted input to a server and returns every message it wrote.
func (s *session) run() []JSONRPCMessage {
	var out bytes.Buffer
	server := NewServerWithOptions(&s.input, &out, Options{Logger: testutil.NewTestLogger(s.t), Version: "test"})
	require.NoError(s.t, server.Run())
	return readMessages(s.t, &out)
}

func readMessages(t *testing.T, r io.Reader) []JSONRPCMessage {
	t.Helper()
	br := bufio.NewReader(r)
	var msgs []JSONRPCMessage
	for {
		line, err := br.ReadString('\n')
		if err == io.EOF {
			return msgs
		}
		require.NoError(t, err)
		length, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "Content-Length:")))
		require.NoError(t, err)
		_, err = br.ReadString('\n')
		require.NoError(t, err)

		body := make([]byte, length)
		_, err = io.ReadFull(br, body)
		require.NoError(t, err)

		var msg JSONRPCMessage
		require.NoError(t, json.Unmarshal(body, &msg))
		msgs = append(msgs, msg)
	}
}

func responseTo(t *testing.T, msgs []JSONRPCMessage, id int) JSONRPCMessage {
	t.Helper()
	want := strconv.Itoa(id)
	for _, m := range msgs {
		if m.ID != nil && string(*m.ID) == want {
			return m
		}
	}
	t.Fatalf("no response to request %d", id)
	return JSONRPCMessage{}
}

func notifications(msgs []JSONRPCMessage, method string) []JSONRPCMessage {
	var out []JSONRPCMessage
	for _, m := range msgs {
		if m.ID == nil && m.Method == method {
			out = append(out, m)
		}
	}
	return out
}

func newSession(t *testing.T) *session {
	s := &session{t: t}
	s.request("initialize", map[string]any{"processId": 1, "rootUri": "file:///proj"})
	s.notify("initialized", map[string]any{})
	return s
}

func TestServerInitialize(t *testing.T) {
	s := newSession(t)
	msgs := s.run()

	resp := responseTo(t, msgs, 1)
	require.Nil(t, resp.Error)
	var result InitializeResult
	require.NoError(t, json.Unmarshal(resp.Result, &result))
	assert.True(t, result.Capabilities.HoverProvider)
	assert.True(t, result.Capabilities.DocumentFormattingProvider)
	require.NotNil(t, result.Capabilities.TextDocumentSync)
	assert.Equal(t, TextDocumentSyncKindFull, result.Capabilities.TextDocumentSync.Change)
	assert.Equal(t, "paws", result.ServerInfo.Name)
}

func TestServerRejectsRequestsBeforeInitialize(t *testing.T) {
	s := &session{t: t}
	id := s.request("textDocument/hover", map[string]any{})
	msgs := s.run()

	resp := responseTo(t, msgs, id)
	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeServerNotInit, resp.Error.Code)
}

func TestServerPublishesDiagnostics(t *testing.T) {
	uri := "file:///proj/bad.paws"
	s := newSession(t)
	s.notify("textDocument/didOpen", DidOpenTextDocumentParams{
		TextDocument: TextDocumentItem{URI: uri, LanguageID: "paws", Version: 1, Text: "this is\ngoing to be an error{\n"},
	})
	s.notify("textDocument/didChange", DidChangeTextDocumentParams{
		TextDocument:   VersionedTextDocumentIdentifier{TextDocumentIdentifier: TextDocumentIdentifier{URI: uri}, Version: 2},
		ContentChanges: []TextDocumentContentChangeEvent{{Text: "{fixed}"}},
	})
	s.notify("textDocument/didClose", DidCloseTextDocumentParams{TextDocument: TextDocumentIdentifier{URI: uri}})
	msgs := s.run()

	published := notifications(msgs, "textDocument/publishDiagnostics")
	require.Len(t, published, 3)

	var opened PublishDiagnosticsParams
	require.NoError(t, json.Unmarshal(published[0].Params, &opened))
	assert.Equal(t, uri, opened.URI)
	require.Len(t, opened.Diagnostics, 1)
	assert.Equal(t, "expected '}' before end-of-input", opened.Diagnostics[0].Message)
	assert.Equal(t, Position{Line: 2, Character: 0}, opened.Diagnostics[0].Range.Start)
	require.NotNil(t, opened.Version)
	assert.Equal(t, 1, *opened.Version)

	for _, m := range published[1:] {
		var p PublishDiagnosticsParams
		require.NoError(t, json.Unmarshal(m.Params, &p))
		assert.Empty(t, p.Diagnostics)
	}
}

func TestServerDidSaveWithText(t *testing.T) {
	uri := "file:///proj/s.paws"
	s := newSession(t)
	s.notify("textDocument/didOpen", DidOpenTextDocumentParams{
		TextDocument: TextDocumentItem{URI: uri, Version: 1, Text: "(ok)"},
	})
	s.notify("textDocument/didSave", map[string]any{
		"textDocument": map[string]any{"uri": uri},
		"text":         "(ok",
	})
	msgs := s.run()

	published := notifications(msgs, "textDocument/publishDiagnostics")
	require.Len(t, published, 2)
	var saved PublishDiagnosticsParams
	require.NoError(t, json.Unmarshal(published[1].Params, &saved))
	require.Len(t, saved.Diagnostics, 1)
	assert.Equal(t, CodeUnterminatedGroup, saved.Diagnostics[0].Code)
}

func TestServerHover(t *testing.T) {
	uri := "file:///proj/h.paws"
	s := newSession(t)
	s.notify("textDocument/didOpen", DidOpenTextDocumentParams{
		TextDocument: TextDocumentItem{URI: uri, Version: 1, Text: "{happy “two words”}"},
	})
	hoverAt := func(char uint32) int {
		return s.request("textDocument/hover", HoverParams{TextDocumentPositionParams{
			TextDocument: TextDocumentIdentifier{URI: uri},
			Position:     Position{Line: 0, Character: char},
		}})
	}
	onGroup := hoverAt(0)
	onSymbol := hoverAt(2)
	onQuoted := hoverAt(9)
	offEnd := hoverAt(40)
	msgs := s.run()

	decode := func(id int) *Hover {
		resp := responseTo(t, msgs, id)
		require.Nil(t, resp.Error)
		var h *Hover
		require.NoError(t, json.Unmarshal(resp.Result, &h))
		return h
	}

	group := decode(onGroup)
	require.NotNil(t, group)
	assert.Equal(t, "**Execution** (2 children)", group.Contents.Value)
	require.NotNil(t, group.Range)
	assert.Equal(t, Range{Start: Position{}, End: Position{Character: 19}}, *group.Range)

	symbol := decode(onSymbol)
	require.NotNil(t, symbol)
	assert.Equal(t, "**Symbol** `\"happy\"`", symbol.Contents.Value)

	quoted := decode(onQuoted)
	require.NotNil(t, quoted)
	assert.Equal(t, "**Symbol** `\"two words\"` (curly quotes)", quoted.Contents.Value)

	assert.Nil(t, decode(offEnd))
}

func TestServerFormatting(t *testing.T) {
	uri := "file:///proj/f.paws"
	s := newSession(t)
	s.notify("textDocument/didOpen", DidOpenTextDocumentParams{
		TextDocument: TextDocumentItem{URI: uri, Version: 1, Text: "a   (b\n c)"},
	})
	id := s.request("textDocument/formatting", DocumentFormattingParams{TextDocument: TextDocumentIdentifier{URI: uri}})
	msgs := s.run()

	var edits []TextEdit
	require.NoError(t, json.Unmarshal(responseTo(t, msgs, id).Result, &edits))
	require.Len(t, edits, 1)
	assert.Equal(t, "a\n(b c)\n", edits[0].NewText)
	assert.Equal(t, Position{Line: 1, Character: 3}, edits[0].Range.End)
}

func TestServerMethodNotFound(t *testing.T) {
	s := newSession(t)
	id := s.request("textDocument/definition", map[string]any{})
	s.notify("$/unknownNotification", nil)
	msgs := s.run()

	resp := responseTo(t, msgs, id)
	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeMethodNotFound, resp.Error.Code)
}

func TestServerShutdownAndExit(t *testing.T) {
	s := newSession(t)
	shutdown := s.request("shutdown", nil)
	after := s.request("textDocument/hover", map[string]any{})
	s.notify("exit", nil)
	// Anything after exit is never read.
	never := s.request("initialize", map[string]any{})
	msgs := s.run()

	resp := responseTo(t, msgs, shutdown)
	assert.Nil(t, resp.Error)

	rejected := responseTo(t, msgs, after)
	require.NotNil(t, rejected.Error)
	assert.Equal(t, CodeInvalidRequest, rejected.Error.Code)

	for _, m := range msgs {
		if m.ID != nil {
			assert.NotEqual(t, strconv.Itoa(never), string(*m.ID))
		}
	}
}

func TestServerSkipsBadContentLength(t *testing.T) {
	for _, length := range []string{"-5", "abc", strconv.Itoa(maxContentLength + 1)} {
		t.Run(length, func(t *testing.T) {
			s := &session{t: t}
			fmt.Fprintf(&s.input, "Content-Length: %s\r\n\r\n", length)
			id := s.request("initialize", map[string]any{})

			msgs := s.run()
			resp := responseTo(t, msgs, id)
			assert.Nil(t, resp.Error)
		})
	}
}
