package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/syntax-framework/basset/internal/style"
	"github.com/syntax-framework/basset/publish"
)

func newCompileCmd(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Write the compiled bundle of every collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCompile(cmd, stdout, stderr)
		},
	}
	cmd.Flags().String("s3-bucket", "", "Publish the bundles to this S3 bucket")
	cmd.Flags().String("s3-prefix", "", "Key prefix of the published bundles")
	cmd.Flags().String("s3-region", "us-east-1", "Region of the S3 bucket")
	cmd.Flags().String("s3-endpoint", "", "Endpoint of an S3 compatible service")
	return cmd
}

func runCompile(cmd *cobra.Command, stdout, stderr io.Writer) error {
	b, logger, err := loadBasset(cmd, stderr)
	if err != nil {
		return err
	}

	sp := style.StartSpinner(stderr, "Compiling bundles...")
	written, err := b.Compile()
	elapsed := sp.Stop()
	if err != nil {
		return fmt.Errorf("compiling bundles: %w", err)
	}
	if len(written) == 0 {
		fmt.Fprintf(stdout, "%s %s\n", style.Warning.Render(style.MarkSkip), "No bundles written")
		return nil
	}
	fmt.Fprintln(stderr, style.Dim.Render(fmt.Sprintf("Compiled %d bundles in %s", len(written), style.Elapsed(elapsed))))
	for _, file := range written {
		fmt.Fprintf(stdout, "%s %s\n", style.Success.Render(style.MarkDone), style.Info.Render(file))
	}

	bucket, _ := cmd.Flags().GetString("s3-bucket")
	if bucket == "" {
		return nil
	}
	prefix, _ := cmd.Flags().GetString("s3-prefix")
	region, _ := cmd.Flags().GetString("s3-region")
	endpoint, _ := cmd.Flags().GetString("s3-endpoint")

	publisher := &publish.S3{
		Client: publish.NewS3Client(region, endpoint),
		Bucket: bucket,
		Prefix: prefix,
		Logger: logger,
	}
	sp = style.StartSpinner(stderr, "Publishing bundles...")
	keys, err := publisher.PublishAll(cmd.Context(), written)
	sp.Stop()
	for _, key := range keys {
		fmt.Fprintf(stdout, "%s s3://%s/%s\n", style.Success.Render(style.MarkDone), bucket, key)
	}
	if err != nil {
		reportError(err)
		fmt.Fprintf(stderr, "%s %v\n", style.Error.Render(style.MarkFail), err)
		return errExit
	}
	return nil
}
