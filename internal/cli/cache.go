package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphbin/pkg/cache"
	"github.com/matzehuels/graphbin/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the conversion cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached outputs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCacheClear(cmd.Context())
		},
	}
}

func (c *CLI) runCacheClear(ctx context.Context) error {
	var (
		clearer  cache.Clearer
		location string
	)
	switch c.Config.Cache.Backend {
	case config.BackendNone:
		printInfo("Caching is disabled")
		return nil
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, c.redisConfig())
		if err != nil {
			return err
		}
		defer rc.Close()
		clearer, location = rc, redisLocation(c.Config.Cache)
	default:
		dir, err := cacheDir()
		if err != nil {
			return fmt.Errorf("get cache dir: %w", err)
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return err
		}
		defer fc.Close()
		clearer, location = fc, dir
	}

	count, err := clearer.Clear(ctx)
	if err != nil {
		return err
	}
	if count == 0 {
		printInfo("Cache is empty")
		return nil
	}
	printSuccess("Cleared %d cached entries", count)
	printDetail("Location: %s", location)
	return nil
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache location",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch c.Config.Cache.Backend {
			case config.BackendNone:
				printInfo("Caching is disabled")
			case config.BackendRedis:
				fmt.Println(redisLocation(c.Config.Cache))
			default:
				dir, err := cacheDir()
				if err != nil {
					return fmt.Errorf("get cache dir: %w", err)
				}
				fmt.Println(dir)
			}
			return nil
		},
	}
}

// redisLocation formats the Redis cache as a URL, e.g. redis://localhost:6379/0.
func redisLocation(c config.Cache) string {
	return fmt.Sprintf("redis://%s/%d", c.RedisAddr, c.RedisDB)
}
