package env

import (
	"fmt"
	"os"
	"strconv"
)

func TrySetFromEnv(envName string, val *string) {
	if envVal, found := os.LookupEnv(envName); found {
		*val = envVal
	}
}

// TrySetIntFromEnv 環境變數存在但不是整數時回傳錯誤，val 保持不變
func TrySetIntFromEnv(envName string, val *int) error {
	envVal, found := os.LookupEnv(envName)
	if !found {
		return nil
	}
	n, err := strconv.Atoi(envVal)
	if err != nil {
		return fmt.Errorf("%s: %w", envName, err)
	}
	*val = n
	return nil
}
