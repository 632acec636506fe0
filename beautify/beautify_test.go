package beautify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/codecomb/codecomb/cache"
	"github.com/codecomb/codecomb/segment"
)

type mapCache map[string]string

func (m mapCache) Get(k string) (string, bool) { v, ok := m[k]; return v, ok }
func (m mapCache) Set(k, v string)             { m[k] = v }

type fakeCommenter struct {
	calls    int
	blocks   []segment.Block
	language string
	out      string
	err      error
}

func (f *fakeCommenter) Comment(_ context.Context, blocks []segment.Block, language string) (string, error) {
	f.calls++
	f.blocks = blocks
	f.language = language
	return f.out, f.err
}

func TestParseMode(t *testing.T) {
	tt := []struct {
		code    string
		want    Mode
		wantErr bool
	}{
		{"", Identity, false},
		{"c", Comment, false},
		{"C", Passthrough, false},
		{"q", Strip, false},
		{"x", 0, true},
		{"cq", 0, true},
	}

	for _, tc := range tt {
		got, err := ParseMode(tc.code)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseMode(%q) error = %v, wantErr %v", tc.code, err, tc.wantErr)
			continue
		}
		if err == nil && got != tc.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tc.code, got, tc.want)
		}
	}
}

func TestOptionsMode(t *testing.T) {
	if m, err := (Options{}).Mode(); err != nil || m != Identity {
		t.Errorf("zero Options = %v, %v; want identity", m, err)
	}
	if m, err := (Options{AddComments: true}).Mode(); err != nil || m != Comment {
		t.Errorf("add comments = %v, %v; want comment", m, err)
	}
	if m, err := (Options{RemoveText: true}).Mode(); err != nil || m != Strip {
		t.Errorf("remove text = %v, %v; want strip", m, err)
	}
	if _, err := (Options{AddComments: true, RemoveText: true}).Mode(); !errors.Is(err, ErrConflictingOptions) {
		t.Errorf("both flags should be rejected, got %v", err)
	}
}

func TestTransformIdentity(t *testing.T) {
	store := mapCache{}
	b := New(store, nil)

	in := "  anything at all\n\n\n   even unclean\n"
	out, err := b.Transform(context.Background(), in, "go", Identity)
	if err != nil {
		t.Fatal(err)
	}
	if out != in {
		t.Errorf("identity changed the input: %q", out)
	}
	if len(store) != 0 {
		t.Errorf("identity should not touch the cache, stored %v", store)
	}
}

func TestTransformStrip(t *testing.T) {
	b := New(cache.Null{}, nil)

	in := "Some explanation.\n\n   x = 1\n   y = 2\n\nMore text.\n"
	out, err := b.Transform(context.Background(), in, "python", Strip)
	if err != nil {
		t.Fatal(err)
	}
	if want := "x = 1\ny = 2\n"; out != want {
		t.Errorf("Strip = %q, want %q", out, want)
	}
}

func TestTransformStripShiftIsBounded(t *testing.T) {
	// The default shift removes three spaces; deeper indentation keeps
	// its remainder.
	b := New(cache.Null{}, nil)

	out, err := b.Transform(context.Background(), "intro\n\n    x = 1\n", "go", Strip)
	if err != nil {
		t.Fatal(err)
	}
	if want := " x = 1\n"; out != want {
		t.Errorf("Strip = %q, want %q", out, want)
	}
}

func TestTransformStripNoCode(t *testing.T) {
	b := New(cache.Null{}, nil)

	out, err := b.Transform(context.Background(), "words only\n", "go", Strip)
	if err != nil {
		t.Fatal(err)
	}
	if out != "\n" {
		t.Errorf("Strip of pure prose = %q, want a bare newline", out)
	}
}

func TestTransformPassthrough(t *testing.T) {
	t.Run("pure prose reflows without touching indentation", func(t *testing.T) {
		b := New(cache.Null{}, nil)

		long := strings.Repeat("lorem ipsum ", 15)
		out, err := b.Transform(context.Background(), long+"\n", "go", Passthrough)
		if err != nil {
			t.Fatal(err)
		}
		lines := strings.Split(out, "\n")
		if len(lines) < 2 {
			t.Fatalf("expected wrapped output, got %q", out)
		}
		for _, ln := range lines {
			if strings.HasPrefix(ln, " ") {
				t.Errorf("passthrough introduced indentation: %q", ln)
			}
			if len(ln) > segment.DefaultWidth {
				t.Errorf("line exceeds fill width: %q", ln)
			}
		}
	})

	t.Run("code keeps alignment via the one-space compensation", func(t *testing.T) {
		b := New(cache.Null{}, nil)

		out, err := b.Transform(context.Background(), "intro\n\n   x = 1\n", "go", Passthrough)
		if err != nil {
			t.Fatal(err)
		}
		if want := "intro\n\n    x = 1"; out != want {
			t.Errorf("Passthrough = %q, want %q", out, want)
		}
	})
}

func TestTransformComment(t *testing.T) {
	fake := &fakeCommenter{out: "# commented\nx = 1\n"}
	store := mapCache{}
	b := New(store, fake)

	in := "intro\n\n   x = 1\n"
	out, err := b.Transform(context.Background(), in, "python", Comment)
	if err != nil {
		t.Fatal(err)
	}
	if out != fake.out {
		t.Errorf("Transform = %q, want the commenter output %q", out, fake.out)
	}
	if fake.language != "python" {
		t.Errorf("commenter got language %q", fake.language)
	}

	// The commenter sees the reflowed, unindented document: a one-line
	// prose block, then a code block covering the absorbed blank line.
	want := []segment.Block{
		{Label: segment.Text, Text: "intro\n", Start: 1, End: 1},
		{Label: segment.Code, Text: "\nx = 1\n", Start: 2, End: 3},
	}
	if len(fake.blocks) != len(want) {
		t.Fatalf("commenter got %d blocks, want %d", len(fake.blocks), len(want))
	}
	for i := range want {
		if fake.blocks[i] != want[i] {
			t.Errorf("block %d = %+v, want %+v", i, fake.blocks[i], want[i])
		}
	}

	// The result must have been cached under the "c" mode code.
	key := cache.Fingerprint(in, "python", "c")
	if v, ok := store[key]; !ok || v != out {
		t.Errorf("result not cached under %q", key)
	}
}

func TestTransformCommentFailure(t *testing.T) {
	cause := errors.New("vim exploded")
	store := mapCache{}
	b := New(store, &fakeCommenter{err: cause})

	_, err := b.Transform(context.Background(), "text\n", "go", Comment)
	if !errors.Is(err, cause) {
		t.Fatalf("Transform error = %v, want wrapped %v", err, cause)
	}
	if len(store) != 0 {
		t.Error("failed transformations must not be cached")
	}
}

func TestTransformCacheHit(t *testing.T) {
	in := "intro\n\n   x = 1\n"
	key := cache.Fingerprint(in, "go", "q")
	store := mapCache{key: "cached answer"}
	fake := &fakeCommenter{}
	b := New(store, fake)

	out, err := b.Transform(context.Background(), in, "go", Strip)
	if err != nil {
		t.Fatal(err)
	}
	if out != "cached answer" {
		t.Errorf("cache hit returned %q", out)
	}
	if fake.calls != 0 {
		t.Error("cache hit must not invoke collaborators")
	}
}

func TestTransformOptions(t *testing.T) {
	b := New(cache.Null{}, nil)

	if _, err := b.TransformOptions(context.Background(), "x\n", "go", Options{AddComments: true, RemoveText: true}); !errors.Is(err, ErrConflictingOptions) {
		t.Errorf("conflicting options = %v, want ErrConflictingOptions", err)
	}

	out, err := b.TransformOptions(context.Background(), "x\n", "go", Options{})
	if err != nil || out != "x\n" {
		t.Errorf("zero options = %q, %v; want identity", out, err)
	}
}
