// Package compress provides the codecs used to store a finished BINA image
// inside a compressed envelope.
//
// A BINA file has no compression of its own. Asset pipelines often keep
// large exports compressed on disk, so bina.Container.ExportTo and
// bina.ImportFrom accept a format.CompressionType and run the complete
// image through one of these codecs:
//
//   - None: stores the image unchanged
//   - Zstd: best ratio; uses klauspost/compress, or valyala/gozstd when built with cgo
//   - S2: balanced speed and ratio (klauspost/compress/s2)
//   - LZ4: fastest decompression (pierrec/lz4 block format)
//
// Codecs are stateless values and safe for concurrent use.
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	packed, err := codec.Compress(image)
package compress
