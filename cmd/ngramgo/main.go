// Command ngramgo installs the word-frequency corpus and runs lookups
// against it.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	minioclient "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/hupe1980/ngramgo"
	"github.com/hupe1980/ngramgo/blobstore"
	minioblob "github.com/hupe1980/ngramgo/blobstore/minio"
	s3blob "github.com/hupe1980/ngramgo/blobstore/s3"
	"github.com/hupe1980/ngramgo/dataset"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

type rootFlags struct {
	dataDir string
	verbose bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "ngramgo",
		Short:         "Word-frequency lookups over the sharded ngram corpus",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if flags.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	cmd.PersistentFlags().StringVar(&flags.dataDir, "data-dir", defaultDataDir(), "corpus data directory")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(
		newInstallCmd(flags),
		newExistsCmd(flags),
		newLookupCmd(flags),
		newBatchCmd(flags),
	)
	return cmd
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "data"
	}
	return filepath.Join(home, ".ngramgo", "data")
}

func openCorpus(flags *rootFlags) (*ngramgo.Corpus, error) {
	level := slog.LevelInfo
	if flags.verbose {
		level = slog.LevelDebug
	}
	return ngramgo.Open(flags.dataDir, ngramgo.WithLogger(ngramgo.NewTextLogger(level)))
}

type installFlags struct {
	source      string
	endpoint    string
	bucket      string
	prefix      string
	accessKey   string
	secretKey   string
	insecure    bool
	srcDir      string
	concurrency int
	rateLimit   float64
}

func newInstallCmd(root *rootFlags) *cobra.Command {
	flags := &installFlags{}

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Download the corpus shard files into the data directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := newSourceStore(cmd, flags)
			if err != nil {
				return err
			}

			installer := dataset.NewInstaller(source, dataset.New(root.dataDir), func(o *dataset.InstallOptions) {
				o.Concurrency = flags.concurrency
				if flags.rateLimit > 0 {
					o.Limiter = rate.NewLimiter(rate.Limit(flags.rateLimit), 1)
				}
			})

			manifest, err := installer.Install(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "installed %d shards to %s\n", len(manifest.Shards), root.dataDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.source, "source", "minio", "download source: minio, s3 or dir")
	cmd.Flags().StringVar(&flags.endpoint, "endpoint", "", "object store endpoint (minio source)")
	cmd.Flags().StringVar(&flags.bucket, "bucket", "", "bucket holding the corpus")
	cmd.Flags().StringVar(&flags.prefix, "prefix", "", "key prefix inside the bucket")
	cmd.Flags().StringVar(&flags.accessKey, "access-key", "", "access key (minio source)")
	cmd.Flags().StringVar(&flags.secretKey, "secret-key", "", "secret key (minio source)")
	cmd.Flags().BoolVar(&flags.insecure, "insecure", false, "disable TLS (minio source)")
	cmd.Flags().StringVar(&flags.srcDir, "dir", "", "local source directory (dir source)")
	cmd.Flags().IntVar(&flags.concurrency, "concurrency", 8, "parallel shard downloads")
	cmd.Flags().Float64Var(&flags.rateLimit, "rate", 0, "max shard downloads per second (0 = unlimited)")

	return cmd
}

func newSourceStore(cmd *cobra.Command, flags *installFlags) (blobstore.BlobStore, error) {
	switch flags.source {
	case "minio":
		if flags.endpoint == "" || flags.bucket == "" {
			return nil, fmt.Errorf("minio source requires --endpoint and --bucket")
		}
		client, err := minioclient.New(flags.endpoint, &minioclient.Options{
			Creds:  credentials.NewStaticV4(flags.accessKey, flags.secretKey, ""),
			Secure: !flags.insecure,
		})
		if err != nil {
			return nil, err
		}
		return minioblob.NewStore(client, flags.bucket, flags.prefix), nil

	case "s3":
		if flags.bucket == "" {
			return nil, fmt.Errorf("s3 source requires --bucket")
		}
		cfg, err := awsconfig.LoadDefaultConfig(cmd.Context())
		if err != nil {
			return nil, err
		}
		return s3blob.NewStore(awss3.NewFromConfig(cfg), flags.bucket, flags.prefix), nil

	case "dir":
		if flags.srcDir == "" {
			return nil, fmt.Errorf("dir source requires --dir")
		}
		return blobstore.NewLocalStore(flags.srcDir), nil

	default:
		return nil, fmt.Errorf("unknown source %q", flags.source)
	}
}

func newExistsCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "exists <word>",
		Short: "Check whether a word is present in the corpus",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			corpus, err := openCorpus(root)
			if err != nil {
				return err
			}
			defer corpus.Close()

			ok, err := corpus.Exists(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ok)
			return nil
		},
	}
}

func newLookupCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <word>",
		Short: "Print the frequency record for a word",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			corpus, err := openCorpus(root)
			if err != nil {
				return err
			}
			defer corpus.Close()

			rec, err := corpus.Frequency(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if rec == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "not found")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "peak_tf=%d peak_df=%d sum_tf=%d sum_df=%d\n",
				rec.PeakTF, rec.PeakDF, rec.SumTF, rec.SumDF)
			return nil
		},
	}
}

func newBatchCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "batch <word>...",
		Short: "Look up many words at once, grouped by shard",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			corpus, err := openCorpus(root)
			if err != nil {
				return err
			}
			defer corpus.Close()

			results, err := corpus.BatchFrequency(cmd.Context(), args)
			if err != nil {
				return err
			}
			for _, word := range args {
				rec := results[word]
				if rec == nil {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t-\n", word)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\tpeak_tf=%d peak_df=%d sum_tf=%d sum_df=%d\n",
					word, rec.PeakTF, rec.PeakDF, rec.SumTF, rec.SumDF)
			}
			return nil
		},
	}
}
