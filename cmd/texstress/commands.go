package main

import "fmt"
import "io"
import "strconv"

import "github.com/spf13/cobra"
import "github.com/sirupsen/logrus"
import "github.com/jmgilman/go/errors"

import "github.com/tinne26/texcache"
import "github.com/tinne26/texcache/render"
import "github.com/tinne26/texcache/surface"

type stressOptions struct {
	capacity int
	buckets int
	count int
	dumpBucket int
	verbose bool
	archive string
}

// Surface-less backend, the cache only needs distinct keys to exercise
// its hashing and eviction.
type nullBackend struct {
	created uint64
	released uint64
}

func (self *nullBackend) CreateSurface(texcache.Descriptor) (surface.Surface, error) {
	self.created += 1
	return nil, nil
}

func (self *nullBackend) ReleaseSurface(surface.Surface) {
	self.released += 1
}

var hudLabels = []string{
	"Attack", "Block", "Coins", "Damage", "Energy", "Focus", "Gold",
	"Health", "Items", "Jump", "Kills", "Level", "Mana", "Nodes",
	"Orbs", "Power", "Quest", "Rank", "Score", "Time", "Units",
	"Value", "Wave", "XP", "Yield", "Zone",
}

func newRootCommand() *cobra.Command {
	opts := &stressOptions{}
	root := &cobra.Command{
		Use:   "texstress",
		Short: "Stress a texture cache and report its hash distribution",
		SilenceUsage: true,
	}
	flags := root.PersistentFlags()
	flags.IntVar(&opts.capacity, "capacity", texcache.DefaultCapacity, "max live cache entries")
	flags.IntVar(&opts.buckets, "buckets", texcache.DefaultBucketCount, "number of hash buckets")
	flags.IntVar(&opts.count, "count", 50000, "number of descriptors to load")
	flags.IntVar(&opts.dumpBucket, "dump-bucket", -1, "list the entries of this bucket at the end")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log every eviction")

	root.AddCommand(buildSpritesCommand(opts))
	root.AddCommand(buildTextCommand(opts))
	root.AddCommand(buildZeroCommand(opts))
	root.AddCommand(buildRenderCommand(opts))
	return root
}

func buildSpritesCommand(opts *stressOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sprites",
		Short: "Load sequential sprite ids at 100% scale",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorkload(cmd, opts, &nullBackend{}, "sprites", func(i int) texcache.Descriptor {
				return texcache.SpriteDescriptor(texcache.SpriteParams{ Sprite: uint32(i), Scale: 100 })
			})
		},
	}
}

func buildTextCommand(opts *stressOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "text",
		Short: "Load HUD-like labels with changing values, colors and flags",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorkload(cmd, opts, &nullBackend{}, "text", hudText)
		},
	}
}

func buildZeroCommand(opts *stressOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "zero",
		Short: "Print the buckets of sprite zero under every light level",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			cache, err := newStressCache(cmd, opts, &nullBackend{})
			if err != nil { return err }
			for light := 0; light < opts.count; light++ {
				desc := spriteZero(int32(light))
				_, err := cache.Load(desc)
				if err != nil { return err }
				fmt.Fprintf(out, "light %2d -> bucket %d\n", light, cache.BucketOf(desc))
			}
			fmt.Fprintf(out, "entries in buckets [0, 100): %d\n", cache.EntriesInBuckets(0, 100))
			return cache.Validate()
		},
	}
}

func buildRenderCommand(opts *stressOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Load text (and sprites, given an archive) through the CPU backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			var sprites render.SpriteSource
			if opts.archive != "" {
				zipSprites, closer, err := render.OpenZipSprites(opts.archive, 64)
				if err != nil { return err }
				defer closer.Close()
				sprites = zipSprites
			}

			backend := render.NewBackend(sprites)
			backend.SetLogger(newLogger(cmd.ErrOrStderr(), opts.verbose))
			gen := hudText
			if sprites != nil {
				gen = func(i int) texcache.Descriptor {
					if i % 2 == 0 { return hudText(i/2) }
					return texcache.SpriteDescriptor(texcache.SpriteParams{ Sprite: uint32(i/2), Scale: 100 })
				}
			}
			err := runWorkload(cmd, opts, backend, "render", gen)
			fmt.Fprintf(cmd.OutOrStdout(), "surfaces: %d created, %d outstanding\n", backend.Created(), backend.Outstanding())
			return err
		},
	}
	cmd.Flags().StringVar(&opts.archive, "archive", "", "zip archive with <id>.png sprites")
	return cmd
}

func hudText(i int) texcache.Descriptor {
	label := hudLabels[i % len(hudLabels)]
	value := (i/len(hudLabels)) % 100
	color := 0xFFFFFF - uint32((i/(len(hudLabels)*100)) % 3)*0x555555
	return texcache.TextDescriptor(label + ": " + strconv.Itoa(value), color, uint16(value % 3))
}

func spriteZero(light int32) texcache.Descriptor {
	return texcache.SpriteDescriptor(texcache.SpriteParams{
		Scale: 100,
		LightMid: light, LightLeft: light, LightRight: light,
		LightUp: light, LightDown: light,
	})
}

func newLogger(out io.Writer, verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.TextFormatter{ DisableTimestamp: true })
	if verbose { logger.SetLevel(logrus.DebugLevel) }
	return logger
}

func newStressCache(cmd *cobra.Command, opts *stressOptions, backend texcache.Backend) (*texcache.Cache, error) {
	config := texcache.DefaultConfig(backend)
	config.Capacity = opts.capacity
	config.BucketCount = opts.buckets
	config.Logger = newLogger(cmd.ErrOrStderr(), opts.verbose)
	return texcache.NewCache(config)
}

func runWorkload(cmd *cobra.Command, opts *stressOptions, backend texcache.Backend, name string, gen func(int) texcache.Descriptor) error {
	cache, err := newStressCache(cmd, opts, backend)
	if err != nil { return err }

	failures, retryable := 0, 0
	for i := 0; i < opts.count; i++ {
		_, err := cache.Load(gen(i))
		if err == nil { continue }
		if errors.Is(err, texcache.ErrNoCapacity) { return err }
		failures += 1
		if texcache.IsRetryable(err) { retryable += 1 }
	}

	out := cmd.OutOrStdout()
	logger := newLogger(out, opts.verbose)
	report := cache.Distribution()
	report.Log(logger, name)
	stats := cache.Stats()
	logger.WithFields(logrus.Fields{
		"hits": stats.Hits,
		"misses": stats.Misses,
		"evictions": stats.Evictions,
		"failures": failures,
		"retryable": retryable,
		"low_buckets": cache.EntriesInBuckets(0, 100),
		"surface_bytes": cache.PeakSurfaceBytes(),
	}).Info("load stats")
	cache.Tracker().Report(logger)

	if opts.dumpBucket >= 0 {
		for _, id := range cache.BucketEntries(opts.dumpBucket) {
			desc, _ := cache.Descriptor(id)
			fmt.Fprintf(out, "bucket %d slot %d: %v\n", opts.dumpBucket, id.Index(), desc)
		}
	}
	return cache.Validate()
}
