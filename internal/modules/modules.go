// Package modules implements the best-effort `.sys` name scavenger: a scan
// of a fixed-size prefix of the dump for driver filenames, classified
// against a built-in reputation table. It does not parse PE headers and
// never discovers a true base address or size.
package modules

import (
	"strings"

	"github.com/hollowcrest/crashlens/internal/model"
	"github.com/hollowcrest/crashlens/internal/reader"
)

const scanWindowSize = 8192

const suffix = ".sys"

// problematicDrivers maps a lowercased driver filename to the reason it has
// historically been associated with instability. Carried in full from the
// reference tool's reputation table.
var problematicDrivers = map[string]string{
	"aswsp.sys":          "Avast Software - may cause memory issues",
	"aswsnx.sys":         "Avast Software - file system filter",
	"avgsp.sys":          "AVG Antivirus - may cause conflicts",
	"bdvedisk.sys":       "Bitdefender - virtual disk driver",
	"klif.sys":           "Kaspersky Lab - file system filter",
	"tmusa.sys":          "Trend Micro - may cause performance issues",
	"tmcomm.sys":         "Trend Micro - communication driver",
	"nvlddmkm.sys":       "NVIDIA Display Driver - common crash source",
	"atikmpag.sys":       "AMD Display Driver - may cause TDR failures",
	"igdkmd64.sys":       "Intel Graphics - may conflict with dedicated GPU",
	"amdkmdag.sys":       "AMD Graphics - kernel mode driver",
	"e1c62x64.sys":       "Intel Ethernet - may cause network issues",
	"rt640x64.sys":       "Realtek Ethernet - may cause BSODs",
	"nwifi.sys":          "Windows WiFi driver - rarely causes issues",
	"iastorv.sys":        "Intel Rapid Storage - may cause disk issues",
	"storahci.sys":       "Standard AHCI driver - check for updates",
	"nvme.sys":           "NVMe controller driver",
	"mrvldev0.sys":       "Marvell storage - known for issues",
	"cpuz.sys":           "CPU-Z driver - can cause issues",
	"rtcore64.sys":       "MSI Afterburner - known vulnerability",
	"asmtxhci.sys":       "ASMedia USB 3.0 - may cause USB issues",
	"asustp.sys":         "ASUS driver - check for updates",
	"ene.sys":            "MSI/RGB software - known issues",
	"wintap.sys":         "VPN/Firewall software",
	"vboxdrv.sys":        "VirtualBox - may conflict with Hyper-V",
	"vmci.sys":           "VMware - virtualization driver",
	"vmx86.sys":          "VMware Workstation driver",
	"nahimicservice.sys": "Nahimic audio - known for conflicts",
	"a2dpsrv.sys":        "A-Volute - Sonic Studio, causes issues",
}

// firstPartyDrivers is the built-in set of well-known Microsoft/Windows
// system components treated as safe regardless of the reputation table.
var firstPartyDrivers = map[string]bool{
	"ntoskrnl.exe": true, "hal.dll": true, "ci.dll": true, "clfs.sys": true,
	"tm.sys": true, "ntfs.sys": true, "fltmgr.sys": true, "wdf01000.sys": true,
	"ksecdd.sys": true, "ndis.sys": true, "tcpip.sys": true, "netio.sys": true,
	"fwpkclnt.sys": true, "storport.sys": true, "spaceport.sys": true,
	"volmgr.sys": true, "volmgrx.sys": true, "mountmgr.sys": true,
	"partmgr.sys": true, "disk.sys": true, "classpnp.sys": true, "acpi.sys": true,
	"wmilib.sys": true, "msrpc.sys": true, "cng.sys": true, "ksecpkg.sys": true,
}

// Scan reads the first scanWindowSize bytes of w and recovers `.sys`-suffixed
// ASCII names, classifying each. It never fails.
func Scan(w *reader.Window) *model.ModuleSummary {
	n := scanWindowSize
	if int64(n) > w.Size() {
		n = int(w.Size())
	}
	window := w.ReadAt(0, n)

	var refs []model.ModuleReference
	seen := make(map[string]bool)

	for i := 0; i+4 <= len(window); i++ {
		if string(window[i:i+4]) != suffix {
			continue
		}
		start := i
		for start > 0 && isPrintable(window[start-1]) {
			start--
		}
		// Spaces before the name are padding, not part of it.
		name := strings.TrimLeft(string(window[start:i+4]), " ")
		if len(name)-len(suffix) < 3 {
			continue
		}
		if strings.HasPrefix(name, ".") {
			continue
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		refs = append(refs, classify(name))
	}

	summary := &model.ModuleSummary{
		ExtractionMethod: "string_scan",
	}
	if len(refs) == 0 {
		summary.Modules = []model.ModuleReference{}
		summary.ProblematicModules = []model.ModuleReference{}
		summary.Note = "No drivers found in header. Full driver list requires loading the module database from the dump, which needs virtual address translation. For complete driver info, use 'lm' in WinDbg."
		return summary
	}

	var problematic []model.ModuleReference
	microsoftCount := 0
	for _, ref := range refs {
		if ref.IsMicrosoft {
			microsoftCount++
		}
		if ref.IsProblematic {
			problematic = append(problematic, ref)
		}
	}

	summary.Total = len(refs)
	summary.MicrosoftCount = microsoftCount
	summary.ThirdPartyCount = len(refs) - microsoftCount
	summary.ProblematicCount = len(problematic)
	summary.Modules = refs
	summary.ProblematicModules = problematic
	if summary.ProblematicModules == nil {
		summary.ProblematicModules = []model.ModuleReference{}
	}
	summary.Note = "Found name references only. Base addresses and sizes require virtual address translation and are not populated. For complete driver listing, analyze with WinDbg."

	return summary
}

func classify(name string) model.ModuleReference {
	lower := strings.ToLower(name)
	ref := model.ModuleReference{Name: name}
	ref.IsMicrosoft = firstPartyDrivers[lower]
	if reason, ok := problematicDrivers[lower]; ok {
		ref.IsProblematic = true
		ref.ProblematicReason = reason
	}
	return ref
}

func isPrintable(b byte) bool {
	return b >= 0x20 && b < 0x7F
}
