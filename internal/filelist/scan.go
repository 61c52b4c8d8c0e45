package filelist

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// Scan рекурсивно обходит root и возвращает обычные файлы в порядке обхода.
// Скрытые файлы и каталоги пропускаются.
func Scan(root string) ([]string, error) {
	root = filepath.Clean(root)

	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to access path %s: %w", path, err)
		}

		if path != root && shouldIgnore(d) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		// Пропускаем директории и специальные файлы
		if !d.Type().IsRegular() {
			return nil
		}

		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

// Вспомогательный метод для определения, нужно ли игнорировать файл
func shouldIgnore(d fs.DirEntry) bool {
	return strings.HasPrefix(d.Name(), ".")
}
