// Package ngramgo provides read-only word-frequency lookups over a large,
// precomputed ngram corpus.
//
// The corpus is partitioned into 256 Parquet shard files addressed by the
// MD5 digest of the normalized word: the first two hex digits pick the
// shard file, the rest is the row key inside it. Shards are loaded lazily
// into a bounded LRU cache with single-flight coordination, so any given
// shard file is read from storage at most once no matter how many
// concurrent lookups want it.
//
// # Quick start
//
//	ctx := context.Background()
//
//	corpus, err := ngramgo.Open("/var/lib/ngramgo/data")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer corpus.Close()
//
//	rec, err := corpus.Frequency(ctx, "whale")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if rec == nil {
//	    fmt.Println("not in corpus")
//	} else {
//	    fmt.Println(rec.SumTF)
//	}
//
// Batch lookups group words by shard so each shard is loaded and queried
// once:
//
//	results, err := corpus.BatchFrequency(ctx, []string{"ship", "whale", "harpoon"})
//
// # Fallback resolution
//
// Surface forms missing from the corpus fall back onto resolvable stems, in
// fixed order and stopping at the first success:
//
//   - contraction/possessive: "don't" resolves via its stem "do" and
//     reports the stem's statistics
//   - hyphenated compounds: "quarter-deck" exists only if every part
//     exists, and reports the first part's statistics
//
// # Installing the corpus
//
// The dataset package downloads the shard files from a MinIO or S3 source
// into a local data directory and writes a manifest; the cmd/ngramgo CLI
// wraps it. The lookup engine itself never writes.
package ngramgo
