package ngramgo_test

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"github.com/hupe1980/ngramgo"
	"github.com/hupe1980/ngramgo/blobstore"
	"github.com/hupe1980/ngramgo/dataset"
	"github.com/hupe1980/ngramgo/shard"
	"github.com/hupe1980/ngramgo/shardio"
)

// Example demonstrates opening a corpus and looking up words, including a
// possessive form that resolves through its stem.
func Example() {
	// An in-memory corpus with a single word; production code points Open at
	// an installed data directory instead.
	store := blobstore.NewMemoryStore()
	key := shard.KeyOf("ship")

	var buf bytes.Buffer
	if err := (shardio.Parquet{}).Encode(&buf, []shardio.Row{
		{Hash: key.Suffix, PeakTF: 18, PeakDF: 19, SumTF: 1000, SumDF: 400},
	}); err != nil {
		log.Fatal(err)
	}
	store.Put(dataset.ShardFileName(key.Prefix), buf.Bytes())

	corpus, err := ngramgo.Open("",
		ngramgo.WithBlobStore(store),
		ngramgo.WithInstalledCheck(func() bool { return true }),
		ngramgo.WithLogger(ngramgo.NoopLogger()),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer corpus.Close()

	ctx := context.Background()

	ok, _ := corpus.Exists(ctx, "ship")
	fmt.Println(ok)

	rec, _ := corpus.Frequency(ctx, "ship's")
	fmt.Println(rec.SumTF)

	// Output:
	// true
	// 1000
}

// Example_batch demonstrates batched lookups.
func Example_batch() {
	store := blobstore.NewMemoryStore()
	key := shard.KeyOf("ship")

	var buf bytes.Buffer
	if err := (shardio.Parquet{}).Encode(&buf, []shardio.Row{
		{Hash: key.Suffix, SumTF: 1000},
	}); err != nil {
		log.Fatal(err)
	}
	store.Put(dataset.ShardFileName(key.Prefix), buf.Bytes())

	corpus, err := ngramgo.Open("",
		ngramgo.WithBlobStore(store),
		ngramgo.WithInstalledCheck(func() bool { return true }),
		ngramgo.WithLogger(ngramgo.NoopLogger()),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer corpus.Close()

	results, err := corpus.BatchFrequency(context.Background(), []string{"ship", "zzyzx"})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(results["ship"].SumTF)
	fmt.Println(results["zzyzx"] == nil)

	// Output:
	// 1000
	// true
}
