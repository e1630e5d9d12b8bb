package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const seedJSON = `{"topics":[
 {"title":"Arrays","subTopics":[{"title":"Basics","questions":[
   {"title":"Two Sum","difficulty":"easy","link":"https://example.test/two-sum"},
   {"title":"3Sum","difficulty":"medium"}]}]},
 {"title":"Trees","subTopics":[{"title":"Traversal","questions":[
   {"title":"Inorder","difficulty":"Basic"}]}]}
]}`

func runCLI(t *testing.T, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()

	cmd := NewRootCmd()

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)

	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

// env isolates config and returns base args pointing at a fresh data dir and seed file.
func env(t *testing.T) []string {
	t.Helper()
	t.Setenv("STUDYSHEET_CONFIG_DIR", t.TempDir())
	for _, k := range []string{"STUDYSHEET_DIR", "STUDYSHEET_STORAGE", "STUDYSHEET_SEED", "STUDYSHEET_FORMAT", "STUDYSHEET_LOG"} {
		t.Setenv(k, "")
	}
	seedPath := filepath.Join(t.TempDir(), "seed.json")
	if err := os.WriteFile(seedPath, []byte(seedJSON), 0o644); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	return []string{"--dir", t.TempDir(), "--seed", seedPath, "--log", "off"}
}

func run(t *testing.T, base []string, args ...string) map[string]any {
	t.Helper()
	out, errOut, err := runCLI(t, append(append([]string{}, base...), args...))
	if err != nil {
		t.Fatalf("%v: %v\nstderr: %s", args, err, string(errOut))
	}
	var env struct {
		Data any `json:"data"`
	}
	if err := json.Unmarshal(out, &env); err != nil {
		t.Fatalf("%v: invalid json: %v\n%s", args, err, string(out))
	}
	m, _ := env.Data.(map[string]any)
	if m == nil {
		m = map[string]any{"list": env.Data}
	}
	return m
}

func topicsOf(t *testing.T, base []string) []map[string]any {
	t.Helper()
	res := run(t, base, "list")
	list, _ := res["list"].([]any)
	out := make([]map[string]any, 0, len(list))
	for _, v := range list {
		out = append(out, v.(map[string]any))
	}
	return out
}

func firstQuestionID(t *testing.T, base []string) string {
	t.Helper()
	topics := topicsOf(t, base)
	sub := topics[0]["subTopics"].([]any)[0].(map[string]any)
	return sub["questions"].([]any)[0].(map[string]any)["id"].(string)
}

func TestInit_LoadsSeedThenStorageWins(t *testing.T) {
	base := env(t)

	res := run(t, base, "init")
	stats := res["stats"].(map[string]any)
	if stats["totalQuestions"].(float64) != 3 || stats["easyCount"].(float64) != 2 {
		t.Fatalf("unexpected stats: %v", stats)
	}

	// Without a seed the stored document is used.
	noSeed := []string{base[0], base[1], "--log", "off"}
	topics := topicsOf(t, noSeed)
	if len(topics) != 2 || topics[0]["title"] != "Arrays" {
		t.Fatalf("expected stored topics; got %v", topics)
	}
}

func TestInit_LoadFailure(t *testing.T) {
	base := env(t)
	base[3] = filepath.Join(t.TempDir(), "missing.json")

	_, errOut, err := runCLI(t, append(base, "init"))
	if err == nil {
		t.Fatalf("expected load failure")
	}
	if strings.TrimSpace(string(errOut)) != "Failed to load data" {
		t.Fatalf("unexpected stderr: %q", string(errOut))
	}
}

func TestTopics_AddRenameUndoRedo(t *testing.T) {
	base := env(t)

	res := run(t, base, "topics", "add", "Graphs")
	id := res["id"].(string)
	if !strings.HasPrefix(id, "top-") {
		t.Fatalf("unexpected id: %q", id)
	}
	run(t, base, "topics", "rename", id, "  Graph Theory  ")

	res = run(t, base, "show", id)
	if node := res["node"].(map[string]any); node["title"] != "Graph Theory" {
		t.Fatalf("expected trimmed rename; got %v", node)
	}

	res = run(t, base, "undo")
	if res["undone"] != "Update topic" {
		t.Fatalf("unexpected undo result: %v", res)
	}
	res = run(t, base, "show", id)
	if node := res["node"].(map[string]any); node["title"] != "Graphs" {
		t.Fatalf("expected undo across invocations; got %v", node)
	}

	res = run(t, base, "redo")
	if res["redone"] != "Update topic" || res["canRedo"] != false {
		t.Fatalf("unexpected redo result: %v", res)
	}

	hist := run(t, base, "history")
	entries := hist["entries"].([]any)
	if len(entries) != 3 {
		t.Fatalf("expected load, add, update entries; got %v", entries)
	}
}

func TestQuestions_ToggleIsNotRecorded(t *testing.T) {
	base := env(t)
	qid := firstQuestionID(t, base)

	res := run(t, base, "questions", "toggle", qid)
	if res["completed"] != true {
		t.Fatalf("expected completed=true; got %v", res)
	}
	stats := run(t, base, "stats")
	if stats["completedQuestions"].(float64) != 1 {
		t.Fatalf("expected one completed question; got %v", stats)
	}

	_, errOut, err := runCLI(t, append(base, "undo"))
	if err == nil || !strings.Contains(string(errOut), "nothing to undo") {
		t.Fatalf("expected toggle to be outside history; err=%v stderr=%s", err, string(errOut))
	}
}

func TestQuestions_AddAndUpdate(t *testing.T) {
	base := env(t)
	topics := topicsOf(t, base)
	subID := topics[1]["subTopics"].([]any)[0].(map[string]any)["id"].(string)

	res := run(t, base, "questions", "add", subID, "--title", "Level Order", "--difficulty", "HARD", "--platform", "leetcode")
	qid := res["id"].(string)
	if res["difficulty"] != "hard" || res["completed"] != false || res["notes"] != "" {
		t.Fatalf("unexpected new question: %v", res)
	}

	res = run(t, base, "questions", "update", qid, "--notes", "use a queue", "--completed")
	if res["notes"] != "use a queue" || res["completed"] != true || res["title"] != "Level Order" {
		t.Fatalf("unexpected updated question: %v", res)
	}
}

func TestErrors_NotFoundAndEmptyTitle(t *testing.T) {
	base := env(t)

	_, errOut, err := runCLI(t, append(base, "topics", "delete", "top-nope"))
	if err == nil || !strings.Contains(string(errOut), "topic not found: top-nope") {
		t.Fatalf("expected not found; err=%v stderr=%s", err, string(errOut))
	}

	qid := firstQuestionID(t, base)
	_, errOut, err = runCLI(t, append(base, "topics", "delete", qid))
	if err == nil || !strings.Contains(string(errOut), "is a question, not a topic") {
		t.Fatalf("expected kind mismatch; err=%v stderr=%s", err, string(errOut))
	}

	_, _, err = runCLI(t, append(base, "topics", "add", "   "))
	if err == nil {
		t.Fatalf("expected empty title to be rejected")
	}
}

func TestList_FilterSortSearch(t *testing.T) {
	base := env(t)

	res := run(t, base, "list", "--filter", "medium")
	list := res["list"].([]any)
	if len(list) != 1 || list[0].(map[string]any)["title"] != "Arrays" {
		t.Fatalf("expected only Arrays for medium; got %v", list)
	}

	res = run(t, base, "list", "--search", "INORDER")
	list = res["list"].([]any)
	if len(list) != 1 || list[0].(map[string]any)["title"] != "Trees" {
		t.Fatalf("expected only Trees for search; got %v", list)
	}

	if _, _, err := runCLI(t, append(base, "list", "--sort", "sideways")); err == nil {
		t.Fatalf("expected invalid sort to fail")
	}
}

func TestExport_CSVToStdout(t *testing.T) {
	base := env(t)

	out, errOut, err := runCLI(t, append(base, "export", "--type", "csv", "--out", "-"))
	if err != nil {
		t.Fatalf("export: %v\n%s", err, string(errOut))
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if lines[0] != "Topic,Sub-topic,Question,Difficulty,Completed,Link" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if len(lines) != 4 || !strings.HasPrefix(lines[1], `"Arrays","Basics","Two Sum","easy","false"`) {
		t.Fatalf("unexpected rows: %q", lines)
	}
}

func TestExport_FileFormatFromExtension(t *testing.T) {
	base := env(t)
	path := filepath.Join(t.TempDir(), "sheet.md")

	res := run(t, base, "export", "--out", path)
	if res["format"] != "md" || res["written"] != path {
		t.Fatalf("unexpected export result: %v", res)
	}
	if _, _, err := runCLI(t, append(base, "export", "--out", path)); err == nil {
		t.Fatalf("expected existing file to be protected without --overwrite")
	}
}

func TestSeedIngest(t *testing.T) {
	base := env(t)
	dump := filepath.Join(t.TempDir(), "dump.json")
	body := `{"data":{"questions":[{"title":"A","topic":"Arrays"},{"title":"B"}]}}`
	if err := os.WriteFile(dump, []byte(body), 0o644); err != nil {
		t.Fatalf("write dump: %v", err)
	}

	out, errOut, err := runCLI(t, append(base, "seed", "ingest", dump))
	if err != nil {
		t.Fatalf("ingest: %v\n%s", err, string(errOut))
	}
	var env struct {
		Data struct {
			Topics []struct {
				Title     string `json:"title"`
				SubTopics []struct {
					Title string `json:"title"`
				} `json:"subTopics"`
			} `json:"topics"`
			Total int `json:"total"`
		} `json:"data"`
	}
	if err := json.Unmarshal(out, &env); err != nil {
		t.Fatalf("decode: %v\n%s", err, string(out))
	}
	doc := env.Data
	if doc.Total != 2 || len(doc.Topics) != 1 || doc.Topics[0].SubTopics[0].Title != "General" {
		t.Fatalf("unexpected ingest result: %+v", doc)
	}
}

func TestDocsAndConfig(t *testing.T) {
	base := env(t)

	res := run(t, base, "docs")
	if topics := res["topics"].([]any); len(topics) == 0 {
		t.Fatalf("expected docs topics")
	}

	res = run(t, base, "config", "set", "storage", "sqlite")
	if res["storage"] != "sqlite" {
		t.Fatalf("unexpected config: %v", res)
	}
	if _, _, err := runCLI(t, append(base, "config", "set", "storage", "floppy")); err == nil {
		t.Fatalf("expected invalid storage to be rejected")
	}

	// The sqlite backend from config is used on the next run.
	stats := run(t, base, "stats")
	if stats["totalQuestions"].(float64) != 3 {
		t.Fatalf("expected seed to load into sqlite; got %v", stats)
	}
	if _, err := os.Stat(filepath.Join(base[1], "studysheet.sqlite")); err != nil {
		t.Fatalf("expected sqlite file: %v", err)
	}
}
