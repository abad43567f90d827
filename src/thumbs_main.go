package satcam

/*------------------------------------------------------------------
 *
 * Purpose:	satcam-thumbs - build a thumbnail storage image.
 *
 * Description:	Each 320 pixel wide JPEG named on the command line is
 *		reduced to 80 x 60 and written to the next thumbnail
 *		slot.  The result can be sent with "satcam-tx thumbs".
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

func ThumbsMain() {
	os.Exit(RunThumbs(os.Args[0], os.Args[1:]))
}

func RunThumbs(name string, args []string) int {
	var flags = pflag.NewFlagSet(name, pflag.ContinueOnError)

	var outputFile = flags.StringP("output-file", "o", "thumbs.img", "Thumbnail storage image to create or update.")
	var first = flags.IntP("first", "n", 0, "Slot for the first picture, 0 .. 15.")
	var logLevel = flags.StringP("log-level", "l", "info", "debug, info, warn or error.")
	var help = flags.BoolP("help", "h", false, "Display help text.")

	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s - Make thumbnails for the thumbnail grid picture.\n", name)
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [options] picture.jpg ...\n", name)
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		return 1
	}

	if *help {
		flags.Usage()
		return 0
	}

	var logger, err = NewLogger(os.Stderr, *logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		return 1
	}

	if flags.NArg() == 0 || *first < 0 || *first+flags.NArg() > ThumbCount {
		flags.Usage()
		return 1
	}

	f, err := os.OpenFile(*outputFile, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		logger.Error("open storage", "file", *outputFile, "err", err)
		return 1
	}
	defer f.Close() //nolint:errcheck

	if st, err := f.Stat(); err == nil && st.Size() < ThumbnailStorageSize() {
		if err := f.Truncate(ThumbnailStorageSize()); err != nil {
			logger.Error("size storage", "file", *outputFile, "err", err)
			return 1
		}
	}

	var status = 0
	for i, path := range flags.Args() {
		var n = *first + i
		if err := storeThumbnail(f, n, path); err != nil {
			logger.Error("thumbnail", "slot", n, "file", path, "err", err)
			status = 1
			continue
		}
		logger.Info("thumbnail", "slot", n, "file", path)
	}

	if err := f.Sync(); err != nil {
		logger.Error("sync storage", "file", *outputFile, "err", err)
		return 1
	}

	return status
}

func storeThumbnail(storage *os.File, n int, path string) error {
	var f, err = os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck

	thumb, err := MakeThumbnail(f)
	if err != nil {
		return err
	}

	return WriteThumbnail(storage, n, thumb)
}
