package sample

// AssignNames generates a unique, human-readable name for every entry in
// table order. Each distinct biosample term name gets its own counter,
// starting at zero; the Nth entry of a term receives the Nth letter
// suffix. Names depend only on row order, so re-sorting the input before
// this stage changes them.
func AssignNames(entries []Entry, tag string) []Named {
	counters := make(map[string]int)

	named := make([]Named, len(entries))
	for i, e := range entries {
		counters[e.TermName]++
		named[i] = Named{
			Entry:      e,
			SampleName: e.TermName + "_" + letterSuffix(counters[e.TermName]),
			FileName:   FileName(e.Reads, tag),
			Group:      e.TermName,
		}
	}
	return named
}

// FileName derives the local file name for a sample from its reads
// accession and a fixed tag, e.g. ENCFF417VHJ + "aligned_chr16" ->
// "ENCFF417VHJ_aligned_chr16.bam".
func FileName(readsAccession, tag string) string {
	if tag == "" {
		tag = "aligned"
	}
	return readsAccession + "_" + tag + ".bam"
}

// letterSuffix converts a 1-based counter to a lowercase letter suffix:
// 1 -> "a", 26 -> "z", 27 -> "aa", 28 -> "ab". The source scheme was
// undefined past 'z'; extending bijectively to two letters keeps names
// unique instead of wrapping.
func letterSuffix(n int) string {
	var buf []byte
	for n > 0 {
		n--
		buf = append([]byte{byte('a' + n%26)}, buf...)
		n /= 26
	}
	return string(buf)
}
