package listopt

import (
	"strings"

	"github.com/dircache/dircache/internal/dircache"
)

func init() {
	MustRegisterFilter(FilterMetadata{
		Key:         "visible",
		Description: "跳过以 . 开头的隐藏条目",
		Filter: func(e dircache.Entry) bool {
			return !strings.HasPrefix(e.Name, ".")
		},
	})
	MustRegisterFilter(FilterMetadata{
		Key:         "dirs",
		Description: "只保留子目录",
		Filter: func(e dircache.Entry) bool {
			return e.IsDir
		},
	})
	MustRegisterFilter(FilterMetadata{
		Key:         "files",
		Description: "只保留普通文件",
		Filter: func(e dircache.Entry) bool {
			return !e.IsDir
		},
	})

	MustRegisterComparator(ComparatorMetadata{
		Key:         "name-asc",
		Description: "按名称升序",
		Less: func(a, b dircache.Entry) bool {
			return a.Name < b.Name
		},
	})
	MustRegisterComparator(ComparatorMetadata{
		Key:         "name-desc",
		Description: "按名称降序",
		Less: func(a, b dircache.Entry) bool {
			return a.Name > b.Name
		},
	})
	MustRegisterComparator(ComparatorMetadata{
		Key:         "size-asc",
		Description: "按大小升序",
		Less: func(a, b dircache.Entry) bool {
			return a.Size < b.Size
		},
	})
	MustRegisterComparator(ComparatorMetadata{
		Key:         "size-desc",
		Description: "按大小降序",
		Less: func(a, b dircache.Entry) bool {
			return a.Size > b.Size
		},
	})
	MustRegisterComparator(ComparatorMetadata{
		Key:         "mtime-asc",
		Description: "按修改时间升序",
		Less: func(a, b dircache.Entry) bool {
			return a.ModTime.Before(b.ModTime)
		},
	})
	MustRegisterComparator(ComparatorMetadata{
		Key:         "mtime-desc",
		Description: "按修改时间降序",
		Less: func(a, b dircache.Entry) bool {
			return b.ModTime.Before(a.ModTime)
		},
	})
	MustRegisterComparator(ComparatorMetadata{
		Key:         "dirs-first",
		Description: "目录排在文件之前，同类按名称升序",
		Less: func(a, b dircache.Entry) bool {
			if a.IsDir != b.IsDir {
				return a.IsDir
			}
			return a.Name < b.Name
		},
	})
}
