package hive

// Hive cannot split lzop-compressed text files with its default input
// format, so the lzop codec selects the deprecated LZO input format
// instead of plain TEXTFILE.
const (
	// CodecLzop is the short name of the lzop compression codec.
	CodecLzop = "lzop"

	// codecLzopClass is the fully qualified class name of the lzop codec.
	codecLzopClass = "com.hadoop.compression.lzo.LzopCodec"

	lzopInputFormatClass  = "com.hadoop.mapred.DeprecatedLzoTextInputFormat"
	textOutputFormatClass = "org.apache.hadoop.hive.ql.io.HiveIgnoreKeyTextOutputFormat"
)

// isLzopCodec reports whether codec names lzop compression, by short name
// or by its fully qualified class-name form.
func isLzopCodec(codec string) bool {
	return codec == CodecLzop || codec == codecLzopClass
}
