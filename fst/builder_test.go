package fst

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/datatrails/go-fst/outputs"
)

func toLabels(s string) []Label {
	labels := make([]Label, len(s))
	for i, c := range []byte(s) {
		labels[i] = Label(c)
	}
	return labels
}

func collectAll[T any](f *FST[T]) []string {
	e, err := NewEnumerator(f)
	if err != nil {
		panic(err)
	}
	var got []string
	for entry := e.Next(); entry != nil; entry = e.Next() {
		buf := make([]byte, len(entry.InputBuffer))
		for i, l := range entry.InputBuffer {
			buf[i] = byte(l)
		}
		got = append(got, string(buf))
	}
	return got
}

func TestEmptyKeyOnlyProducesNonEmptyFST(t *testing.T) {
	alg := outputs.NoOutputs()
	b, err := New[struct{}](alg, DefaultOptions[struct{}]())
	require.NoError(t, err)

	require.NoError(t, b.Add(nil, alg.NoOutput()))

	f, err := b.Finish()
	require.NoError(t, err)
	require.False(t, f.Empty())
	require.Equal(t, []string{""}, collectAll(f))
}

func TestEmptyInputMustBeFirst(t *testing.T) {
	alg := outputs.NoOutputs()
	b, err := New[struct{}](alg, DefaultOptions[struct{}]())
	require.NoError(t, err)

	require.NoError(t, b.Add(toLabels("a"), alg.NoOutput()))
	err = b.Add(nil, alg.NoOutput())
	require.ErrorIs(t, err, ErrEmptyInputNotFirst)
}

func TestThreeDistinctKeysNoOutputEnumerateSorted(t *testing.T) {
	alg := outputs.NoOutputs()
	b, err := New[struct{}](alg, DefaultOptions[struct{}]())
	require.NoError(t, err)

	for _, k := range []string{"cat", "dog", "dogs"} {
		require.NoError(t, b.Add(toLabels(k), alg.NoOutput()))
	}

	f, err := b.Finish()
	require.NoError(t, err)
	require.False(t, f.Empty())
	require.Equal(t, []string{"cat", "dog", "dogs"}, collectAll(f))
	require.Equal(t, 3, b.Stats().KeysAccepted)
}

func TestOutOfOrderInputRejected(t *testing.T) {
	alg := outputs.NoOutputs()
	b, err := New[struct{}](alg, DefaultOptions[struct{}]())
	require.NoError(t, err)

	require.NoError(t, b.Add(toLabels("dog"), alg.NoOutput()))
	err = b.Add(toLabels("cat"), alg.NoOutput())
	require.ErrorIs(t, err, ErrOutOfOrderInput)
}

func TestSharedSuffixIsDeduplicated(t *testing.T) {
	alg := outputs.NoOutputs()
	opts := DefaultOptions[struct{}]()
	opts.DoShareSuffix = true

	b, err := New[struct{}](alg, opts)
	require.NoError(t, err)

	for _, k := range []string{"abcd", "xycd"} {
		require.NoError(t, b.Add(toLabels(k), alg.NoOutput()))
	}

	f, err := b.Finish()
	require.NoError(t, err)
	require.Equal(t, []string{"abcd", "xycd"}, collectAll(f))
	require.GreaterOrEqual(t, b.Stats().NodesShared, 2)
}

func TestOutputForwardPushPreservesPerKeyOutputs(t *testing.T) {
	alg := outputs.Int64Outputs()
	b, err := New[int64](alg, DefaultOptions[int64]())
	require.NoError(t, err)

	require.NoError(t, b.Add([]Label{1, 2}, 10))
	require.NoError(t, b.Add([]Label{1, 3}, 4))

	f, err := b.Finish()
	require.NoError(t, err)

	e, err := NewEnumerator(f)
	require.NoError(t, err)

	first := e.Next()
	require.NotNil(t, first)
	require.Equal(t, []Label{1, 2}, first.InputBuffer)
	require.Equal(t, int64(10), first.Output)

	second := e.Next()
	require.NotNil(t, second)
	require.Equal(t, []Label{1, 3}, second.InputBuffer)
	require.Equal(t, int64(4), second.Output)

	require.Nil(t, e.Next())
}

func TestDuplicateKeyMergesViaAlgebra(t *testing.T) {
	alg := outputs.Int64Outputs()
	b, err := New[int64](alg, DefaultOptions[int64]())
	require.NoError(t, err)

	require.NoError(t, b.Add([]Label{1, 2}, 3))
	require.NoError(t, b.Add([]Label{1, 2}, 4))

	f, err := b.Finish()
	require.NoError(t, err)

	e, err := NewEnumerator(f)
	require.NoError(t, err)
	entry := e.Next()
	require.NotNil(t, entry)
	require.Equal(t, int64(7), entry.Output)
	require.Equal(t, 1, b.Stats().KeysAccepted)
}

func TestDuplicateKeyWithoutMergeSupportErrors(t *testing.T) {
	alg := outputs.ByteSequenceOutputs()
	b, err := New[[]byte](alg, DefaultOptions[[]byte]())
	require.NoError(t, err)

	require.NoError(t, b.Add(toLabels("a"), []byte("x")))
	err = b.Add(toLabels("a"), []byte("y"))
	require.ErrorIs(t, err, ErrDuplicateKeyNoMerge)
}

func TestMinSuffixCount1PrunesRareBranchesToDeadEndFinal(t *testing.T) {
	alg := outputs.NoOutputs()
	opts := DefaultOptions[struct{}]()
	opts.MinSuffixCount1 = 2

	b, err := New[struct{}](alg, opts)
	require.NoError(t, err)

	for _, k := range []string{"aa", "ab", "ac", "bb", "bc"} {
		require.NoError(t, b.Add(toLabels(k), alg.NoOutput()))
	}

	f, err := b.Finish()
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, collectAll(f))
	require.GreaterOrEqual(t, b.Stats().NodesPruned, 5)
}

func TestFinishWithNoAcceptedKeysIsEmpty(t *testing.T) {
	alg := outputs.NoOutputs()
	b, err := New[struct{}](alg, DefaultOptions[struct{}]())
	require.NoError(t, err)

	f, err := b.Finish()
	require.NoError(t, err)
	require.True(t, f.Empty())
	require.Nil(t, collectAll(f))
}

func TestAddAfterFinishErrors(t *testing.T) {
	alg := outputs.NoOutputs()
	b, err := New[struct{}](alg, DefaultOptions[struct{}]())
	require.NoError(t, err)

	_, err = b.Finish()
	require.NoError(t, err)

	err = b.Add(toLabels("a"), alg.NoOutput())
	require.ErrorIs(t, err, ErrBuilderFinished)
}

func TestLookupHitsAndMisses(t *testing.T) {
	alg := outputs.Int64Outputs()
	b, err := New[int64](alg, DefaultOptions[int64]())
	require.NoError(t, err)

	require.NoError(t, b.Add([]Label{1, 2}, 10))
	require.NoError(t, b.Add([]Label{1, 3}, 4))

	f, err := b.Finish()
	require.NoError(t, err)

	out, ok := f.Lookup([]Label{1, 2})
	require.True(t, ok)
	require.Equal(t, int64(10), out)

	out, ok = f.Lookup([]Label{1, 3})
	require.True(t, ok)
	require.Equal(t, int64(4), out)

	_, ok = f.Lookup([]Label{1})
	require.False(t, ok)

	_, ok = f.Lookup([]Label{9})
	require.False(t, ok)
}

func TestLabelOutOfRangeForByteInput(t *testing.T) {
	alg := outputs.NoOutputs()
	b, err := New[struct{}](alg, DefaultOptions[struct{}]())
	require.NoError(t, err)

	err = b.Add([]Label{300}, alg.NoOutput())
	require.ErrorIs(t, err, ErrLabelOutOfRange)
}
