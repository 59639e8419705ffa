package fs

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/bft-labs/gwiki/internal/ports"
)

// ImageCopier implements ports.AssetCopier between two flat directories.
type ImageCopier struct {
	srcDir string
	dstDir string
	logger ports.Logger
}

// NewImageCopier creates an ImageCopier from srcDir to dstDir.
func NewImageCopier(srcDir, dstDir string, logger ports.Logger) *ImageCopier {
	return &ImageCopier{srcDir: srcDir, dstDir: dstDir, logger: logger}
}

// Copy copies each image present in the source and absent from the
// destination. Individual failures are logged and counted.
func (c *ImageCopier) Copy(ctx context.Context, images []string) (ports.CopyStats, error) {
	stats := ports.CopyStats{Requested: len(images)}
	if len(images) == 0 {
		return stats, nil
	}
	if err := os.MkdirAll(c.dstDir, 0o755); err != nil {
		return stats, err
	}

	for _, name := range images {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		if !validName(name) {
			stats.Missing++
			continue
		}

		src := filepath.Join(c.srcDir, name)
		dst := filepath.Join(c.dstDir, name)

		info, err := os.Stat(src)
		if err != nil || !info.Mode().IsRegular() {
			stats.Missing++
			c.logger.Debug("image not in source", ports.String("image", name))
			continue
		}
		if _, err := os.Stat(dst); err == nil {
			stats.Skipped++
			continue
		}

		if err := copyFile(src, dst, info); err != nil {
			stats.Failed++
			c.logger.Warn("failed to copy image",
				ports.String("image", name),
				ports.Err(err))
			continue
		}
		stats.Copied++
	}

	return stats, nil
}

// copyFile copies src to dst through a temp file, keeping mode and mtime.
func copyFile(src, dst string, info os.FileInfo) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()

	if _, err = io.Copy(tmp, in); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), info.Mode().Perm()); err != nil {
		return err
	}
	if err = os.Chtimes(tmp.Name(), info.ModTime(), info.ModTime()); err != nil {
		return err
	}
	if err = os.Rename(tmp.Name(), dst); err != nil {
		return err
	}
	return nil
}
