package yaml

import (
	"math"
	"testing"

	"github.com/subaru-pfs/instdata/document"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodec_Decode_OrderedMapping(t *testing.T) {
	t.Parallel()

	codec := NewCodec()

	doc, err := codec.Decode([]byte(`
zeta: 1
alpha: two
mid:
  - 1
  - 2.5
  - true
  - null
`))
	require.NoError(t, err)

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, doc.Keys())

	want := document.Map(
		document.Field("zeta", document.Int(1)),
		document.Field("alpha", document.String("two")),
		document.Field("mid", document.List(
			document.Int(1),
			document.Float(2.5),
			document.Bool(true),
			document.Null(),
		)),
	)
	assert.True(t, want.Equal(doc), "got %s", doc)
}

func TestCodec_Decode_BlankIsNull(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "   \n\n"} {
		doc, err := NewCodec().Decode([]byte(input))
		require.NoError(t, err)
		assert.True(t, doc.IsNull())
	}
}

func TestCodec_Decode_NonStringKeys(t *testing.T) {
	t.Parallel()

	doc, err := NewCodec().Decode([]byte("1: one\ntrue: yes-string\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"1", "true"}, doc.Keys())
}

func TestCodec_Decode_InvalidYAML(t *testing.T) {
	t.Parallel()

	_, err := NewCodec().Decode([]byte("invalid: yaml: content: [\n"))

	require.Error(t, err)
	require.ErrorIs(t, err, ErrSyntax)
}

func TestCodec_RoundTrip(t *testing.T) {
	t.Parallel()

	codec := NewCodec()

	tests := []struct {
		name string
		doc  document.Value
	}{
		{
			name: "flat mapping with list",
			doc: document.Map(
				document.Field("a", document.Int(1)),
				document.Field("b", document.List(document.Int(1), document.Int(2), document.Int(3))),
			),
		},
		{
			name: "order is kept",
			doc: document.Map(
				document.Field("z", document.Int(1)),
				document.Field("y", document.Int(2)),
				document.Field("x", document.Int(3)),
			),
		},
		{
			name: "whole floats stay floats",
			doc: document.Map(
				document.Field("ratio", document.Float(2)),
				document.Field("neg", document.Float(-0.125)),
				document.Field("count", document.Int(2)),
			),
		},
		{
			name: "strings that look like other scalars",
			doc: document.Map(
				document.Field("num", document.String("123")),
				document.Field("bool", document.String("true")),
				document.Field("empty", document.String("")),
				document.Field("colon", document.String("a: b")),
				document.Field("exponent", document.String("1e-05")),
				document.Field("hex", document.String("0x1F")),
				document.Field("tilde", document.String("~")),
			),
		},
		{
			name: "strings spelling special floats",
			doc: document.Map(
				document.Field("inf", document.String(".inf")),
				document.Field("neg_inf", document.String("-.inf")),
				document.Field("nan", document.String(".nan")),
				document.Field("nan_caps", document.String(".NaN")),
				document.Field("inf_caps", document.String(".Inf")),
			),
		},
		{
			name: "strings with control characters",
			doc: document.Map(
				document.Field("tab", document.String("a\tb")),
				document.Field("leading_tab", document.String("\tlead")),
				document.Field("carriage_return", document.String("a\rb")),
				document.Field("newline", document.String("line1\nline2")),
				document.Field("padded", document.String("  padded ")),
				document.Field("quote", document.String(`say "hi" \ bye`)),
			),
		},
		{
			name: "floats in exponent form",
			doc: document.Map(
				document.Field("tolerance", document.Float(1e-05)),
				document.Field("big", document.Float(1e15)),
				document.Field("bigger", document.Float(1e21)),
				document.Field("tiny", document.Float(5e-324)),
				document.Field("negative", document.Float(-2.5e-08)),
				document.Field("max", document.Float(math.MaxFloat64)),
			),
		},
		{
			name: "nested",
			doc: document.Map(
				document.Field("cobras", document.List(
					document.Map(
						document.Field("id", document.Int(1)),
						document.Field("good", document.Bool(true)),
						document.Field("center", document.List(document.Float(1.5), document.Float(-2.25))),
					),
					document.Map(
						document.Field("id", document.Int(2)),
						document.Field("good", document.Bool(false)),
						document.Field("center", document.Null()),
					),
				)),
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data, err := codec.Encode(tt.doc)
			require.NoError(t, err)

			got, err := codec.Decode(data)
			require.NoError(t, err)
			assert.True(t, tt.doc.Equal(got), "encoded:\n%s\ndecoded: %s", data, got)
		})
	}
}

func TestFloatScalar_MarshalYAML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float64
		want string
	}{
		{2, "2.0"},
		{2.5, "2.5"},
		{-3, "-3.0"},
		{1e21, "1.0e+21"},
		{1e-05, "1.0e-05"},
		{2.5e-08, "2.5e-08"},
		{math.Inf(1), ".inf"},
		{math.Inf(-1), "-.inf"},
		{math.NaN(), ".nan"},
	}

	for _, tt := range tests {
		out, err := floatScalar(tt.in).MarshalYAML()
		require.NoError(t, err)
		assert.Equal(t, tt.want, string(out))
	}
}

func TestCodec_FloatsDecodeAsFloats(t *testing.T) {
	t.Parallel()

	codec := NewCodec()

	for _, f := range []float64{1e-05, 1e15, 1e16, 1e20, 1e21, 5e-324, -7e-10, 3} {
		data, err := codec.Encode(document.Map(document.Field("v", document.Float(f))))
		require.NoError(t, err)

		got, err := codec.Decode(data)
		require.NoError(t, err)

		v, ok := got.Get("v")
		require.True(t, ok)
		require.Equal(t, document.KindFloat, v.Kind(), "encoded %q", data)

		back, _ := v.AsFloat()
		assert.Equal(t, f, back) //nolint:testifylint // exact float round trip is the point
	}
}

func TestNeedsQuoting(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want bool
	}{
		{"agc", false},
		{"a: b", false},
		{"config/bar", false},
		{"", true},
		{".nan", true},
		{".INF", true},
		{"Null", true},
		{"42", true},
		{"1.0e-05", true},
		{"0o17", true},
		{"a\tb", true},
		{"a\x7fb", true},
		{" lead", true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, needsQuoting(tt.in), "%q", tt.in)
	}
}

func TestCodec_Decode_MultipleDocuments(t *testing.T) {
	t.Parallel()

	codec := NewCodec()

	_, err := codec.Decode([]byte("a: 1\n---\nb: 2\n"))
	require.ErrorIs(t, err, ErrSyntax)
	require.ErrorIs(t, err, ErrMultipleDocuments)

	var target map[string]int

	err = codec.Parse([]byte("a: 1\n---\nb: 2\n"), &target, "a")
	require.ErrorIs(t, err, ErrMultipleDocuments)

	doc, err := codec.Decode([]byte("---\na: 1\n"))
	require.NoError(t, err, "a single document with an explicit start marker is fine")
	assert.Equal(t, []string{"a"}, doc.Keys())
}

func TestCodec_Encode_NullDocument(t *testing.T) {
	t.Parallel()

	codec := NewCodec()

	data, err := codec.Encode(document.Null())
	require.NoError(t, err)

	got, err := codec.Decode(data)
	require.NoError(t, err)
	assert.True(t, got.IsNull())
}

func TestCodec_Parse_EmptyPath(t *testing.T) {
	t.Parallel()

	data := []byte(`
name: pfi
version: "1.0"
`)

	var result struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	}

	err := NewCodec().Parse(data, &result, "")

	require.NoError(t, err)
	assert.Equal(t, "pfi", result.Name)
	assert.Equal(t, "1.0", result.Version)
}

func TestCodec_Parse_MultiLevelPath(t *testing.T) {
	t.Parallel()

	data := []byte(`
motors:
  theta:
    steps: 400
    reversed: true
  phi:
    steps: 200
    reversed: false
`)

	var result struct {
		Steps    int  `yaml:"steps"`
		Reversed bool `yaml:"reversed"`
	}

	err := NewCodec().Parse(data, &result, "motors:theta")

	require.NoError(t, err)
	assert.Equal(t, 400, result.Steps)
	assert.True(t, result.Reversed)
}

func TestCodec_Parse_ArrayValue(t *testing.T) {
	t.Parallel()

	data := []byte(`
mcs:
  hosts:
    - mcs1
    - mcs2
`)

	var result []string

	err := NewCodec().Parse(data, &result, "mcs:hosts")

	require.NoError(t, err)
	assert.Equal(t, []string{"mcs1", "mcs2"}, result)
}

func TestCodec_Parse_FloatValue(t *testing.T) {
	t.Parallel()

	data := []byte(`
fiber:
  tolerance: 0.01
`)

	var result float64

	err := NewCodec().Parse(data, &result, "fiber:tolerance")

	require.NoError(t, err)
	assert.InDelta(t, 0.01, result, 1e-9)
}

func TestCodec_Parse_NonExistentKey(t *testing.T) {
	t.Parallel()

	var result struct {
		Host string `yaml:"host"`
	}

	err := NewCodec().Parse([]byte("api:\n  host: localhost\n"), &result, "nonexistent")

	require.ErrorIs(t, err, ErrPathNotFound)
}

func TestCodec_Parse_EmptyData(t *testing.T) {
	t.Parallel()

	var result struct{}

	err := NewCodec().Parse([]byte{}, &result, "")

	require.ErrorIs(t, err, ErrEmptyData)
}

func TestCodec_Parse_InvalidYAML(t *testing.T) {
	t.Parallel()

	var result struct{}

	err := NewCodec().Parse([]byte("invalid: yaml: content: [\n"), &result, "")

	require.Error(t, err)
}

func TestConvertToYAMLPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"key", "$.key"},
		{"motors:theta", "$.motors.theta"},
		{"a:b:c", "$.a.b.c"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, convertToYAMLPath(tt.input))
	}
}
