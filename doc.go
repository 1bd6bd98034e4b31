// Package huffpack compresses arbitrary byte streams with a Huffman prefix
// code built from the observed byte frequencies.
//
// The pipeline runs strictly forward over two passes of the input:
//
//	CountFrequencies → BuildTree → GenerateCodes → Encode → WriteFile
//
// The default ("raw") output is nothing but the packed bitstream.  It stores
// neither the code table nor the padding count, so a raw artifact cannot be
// decoded without the CodeTable that produced it.  FormatFramed is an opt-in
// extension which prepends the frequency table and padding count, and which
// Decompress understands.
//
// References:
//
//	<https://en.wikipedia.org/wiki/Huffman_coding>
package huffpack
