package analysis

// RawColumns is the full set of quantities requested from the
// simulation engine per DC grid point, in dataset order: geometry,
// bias echo, threshold voltages, drain current, (trans)conductances,
// and the 16 raw mutual capacitances c{X}{Y} for terminals
// bulk/source/drain/gate.
var RawColumns = []string{
	"W", "L",
	"Vds", "Vgs", "Vbs", "vth", "vdsat",
	"id", "gbs", "gbd", "gds", "gm", "gmbs",
	"cbb", "csb", "cdb", "cgb",
	"css", "csd", "csg", "cds",
	"cdd", "cdg", "cbs", "cbd",
	"cbg", "cgd", "cgs", "cgg",
}

// OutputColumns is the manifest of the persisted dataset: the raw
// columns worth keeping, the reconstructed two-terminal capacitances
// (which replace their raw namesakes), and the derived metrics.
var OutputColumns = []string{
	"W", "L", "Vds", "Vgs", "Vbs",
	"vth", "vdsat", "id", "fug",
	"gbs", "gbd", "gds", "gm", "gmbs",
	"cgd", "cgb", "cgs",
	"cds", "csb", "cdb",
	"gmid", "a0", "jd",
}
